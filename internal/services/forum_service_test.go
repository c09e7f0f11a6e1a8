package services_test

import (
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gabriola-connects/portal-backend/internal/domain/entities"
	"github.com/gabriola-connects/portal-backend/internal/domain/errors"
	"github.com/gabriola-connects/portal-backend/internal/domain/repositories"
	"github.com/gabriola-connects/portal-backend/internal/services"
)

var _ = Describe("ForumService", func() {
	var (
		f         *fixture
		forum     *services.ForumService
		author    *entities.User
		reader    *entities.User
		moderator *entities.User
	)

	BeforeEach(func() {
		f = newFixture()
		forum = services.NewForumService(f.forum, f.categoryService, f.uow, f.clock, f.logger)
		author = f.user("Author", entities.Flags{})
		reader = f.user("Reader", entities.Flags{})
		moderator = f.user("Moderator", entities.Flags{ForumModerator: true})
		f.category(entities.ScopeForum, "General")
	})

	newThread := func() *entities.Post {
		post, err := forum.CreateThread(f.ctx, author, services.ThreadInput{
			Category: "general",
			Title:    "Ferry lineup this morning",
			Body:     "Anyone know why the 7:30 was late?",
		})
		Expect(err).NotTo(HaveOccurred())
		return post
	}

	Describe("CreateThread", func() {
		It("rejects an unknown category", func() {
			_, err := forum.CreateThread(f.ctx, author, services.ThreadInput{Category: "nope", Title: "t", Body: "b"})
			Expect(err).To(BeAssignableToTypeOf(&errors.ValidationError{}))
			Expect(err.(*errors.ValidationError).Field).To(Equal("category"))
		})

		It("requires authentication", func() {
			_, err := forum.CreateThread(f.ctx, nil, services.ThreadInput{Category: "general", Title: "t", Body: "b"})
			Expect(err).To(MatchError(errors.ErrUnauthorized))
		})

		It("rejects banned users", func() {
			author.Ban("spam", f.clock.Now())
			_, err := forum.CreateThread(f.ctx, author, services.ThreadInput{Category: "general", Title: "t", Body: "b"})
			Expect(err).To(MatchError(errors.ErrUserBanned))
		})
	})

	Describe("Reply", func() {
		It("increments the reply count and bumps the last activity", func() {
			post := newThread()
			f.clock.Advance(time.Hour)

			_, err := forum.Reply(f.ctx, reader, post.ID, "It was the dangerous cargo sailing.")
			Expect(err).NotTo(HaveOccurred())

			thread, err := forum.GetThread(f.ctx, reader, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(thread.Post.ReplyCount).To(Equal(1))
			Expect(thread.Post.LastActivityAt).To(BeTemporally("==", f.clock.Now()))
			Expect(thread.Replies).To(HaveLen(1))
		})

		It("fails on a locked thread", func() {
			post := newThread()
			_, err := forum.SetLocked(f.ctx, moderator, post.ID, true)
			Expect(err).NotTo(HaveOccurred())

			_, err = forum.Reply(f.ctx, reader, post.ID, "hello")
			Expect(err).To(MatchError(errors.ErrPostLocked))
		})

		It("fails on a deleted thread", func() {
			post := newThread()
			Expect(forum.DeleteThread(f.ctx, author, post.ID, "")).To(Succeed())

			_, err := forum.Reply(f.ctx, reader, post.ID, "hello")
			Expect(err).To(MatchError(errors.ErrPostNotFound))
		})
	})

	Describe("replies ordering and tombstones", func() {
		It("returns replies chronologically and blanks deleted ones for regular users", func() {
			post := newThread()
			first, err := forum.Reply(f.ctx, reader, post.ID, "first")
			Expect(err).NotTo(HaveOccurred())
			f.clock.Advance(time.Minute)
			_, err = forum.Reply(f.ctx, author, post.ID, "second")
			Expect(err).NotTo(HaveOccurred())

			Expect(forum.DeleteReply(f.ctx, reader, first.ID, "oops")).To(Succeed())

			thread, err := forum.GetThread(f.ctx, author, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(thread.Post.ReplyCount).To(Equal(1))
			Expect(thread.Replies).To(HaveLen(2))
			Expect(thread.Replies[0].IsDeleted()).To(BeTrue())
			Expect(thread.Replies[0].Body).To(BeEmpty())
			Expect(thread.Replies[1].Body).To(Equal("second"))

			modView, err := forum.GetThread(f.ctx, moderator, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(modView.Replies[0].Body).To(Equal("first"))
			Expect(modView.Replies[0].DeleteReason).To(Equal("oops"))
		})

		It("lets only moderators restore a reply and re-counts it", func() {
			post := newThread()
			reply, err := forum.Reply(f.ctx, reader, post.ID, "first")
			Expect(err).NotTo(HaveOccurred())
			Expect(forum.DeleteReply(f.ctx, moderator, reply.ID, "")).To(Succeed())

			_, err = forum.RestoreReply(f.ctx, reader, reply.ID)
			Expect(err).To(MatchError(errors.ErrForbidden))

			_, err = forum.RestoreReply(f.ctx, moderator, reply.ID)
			Expect(err).NotTo(HaveOccurred())

			thread, err := forum.GetThread(f.ctx, reader, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(thread.Post.ReplyCount).To(Equal(1))
		})
	})

	Describe("editing and deleting", func() {
		It("allows the author and moderators but not other users", func() {
			post := newThread()

			_, err := forum.EditThread(f.ctx, reader, post.ID, services.ThreadInput{Category: "general", Title: "x", Body: "y"})
			Expect(err).To(MatchError(errors.ErrForbidden))

			edited, err := forum.EditThread(f.ctx, author, post.ID, services.ThreadInput{Category: "general", Title: "Edited", Body: "y"})
			Expect(err).NotTo(HaveOccurred())
			Expect(edited.Title).To(Equal("Edited"))

			Expect(forum.DeleteThread(f.ctx, moderator, post.ID, "off topic")).To(Succeed())
		})

		It("hides deleted threads unless a moderator asks for them", func() {
			post := newThread()
			Expect(forum.DeleteThread(f.ctx, author, post.ID, "")).To(Succeed())

			page, err := forum.ListThreads(f.ctx, reader, services.ThreadQuery{IncludeDeleted: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(BeZero())

			page, err = forum.ListThreads(f.ctx, moderator, services.ThreadQuery{IncludeDeleted: true})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Total).To(BeEquivalentTo(1))

			_, err = forum.GetThread(f.ctx, reader, post.ID)
			Expect(err).To(MatchError(errors.ErrPostNotFound))

			restored, err := forum.RestoreThread(f.ctx, moderator, post.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(restored.IsDeleted()).To(BeFalse())

			_, err = forum.RestoreThread(f.ctx, moderator, post.ID)
			Expect(err).To(MatchError(errors.ErrNotDeleted))
		})
	})

	Describe("ListThreads", func() {
		It("puts pinned threads first, then the most recent activity", func() {
			older := newThread()
			f.clock.Advance(time.Hour)
			newer := newThread()
			f.clock.Advance(time.Hour)
			newest := newThread()
			_, err := forum.SetPinned(f.ctx, moderator, older.ID, true)
			Expect(err).NotTo(HaveOccurred())

			page, err := forum.ListThreads(f.ctx, nil, services.ThreadQuery{Pagination: repositories.Pagination{Page: 1, PageSize: 10}})
			Expect(err).NotTo(HaveOccurred())
			Expect(page.Items).To(HaveLen(3))
			Expect(page.Items[0].ID).To(Equal(older.ID))
			Expect(page.Items[1].ID).To(Equal(newest.ID))
			Expect(page.Items[2].ID).To(Equal(newer.ID))
		})
	})

	Describe("Vote", func() {
		It("toggles, switches and keeps the score consistent", func() {
			post := newThread()

			result, err := forum.Vote(f.ctx, reader, entities.VoteTargetPost, post.ID, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(*result).To(Equal(services.VoteResult{Score: 1, Value: 1}))

			result, err = forum.Vote(f.ctx, reader, entities.VoteTargetPost, post.ID, -1)
			Expect(err).NotTo(HaveOccurred())
			Expect(*result).To(Equal(services.VoteResult{Score: -1, Value: -1}))

			result, err = forum.Vote(f.ctx, reader, entities.VoteTargetPost, post.ID, -1)
			Expect(err).NotTo(HaveOccurred())
			Expect(*result).To(Equal(services.VoteResult{Score: 0, Value: 0}))

			stored, err := f.forum.FindPost(f.ctx, post.ID, false)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Score).To(Equal(0))
		})

		It("scores replies too", func() {
			post := newThread()
			reply, err := forum.Reply(f.ctx, reader, post.ID, "agreed")
			Expect(err).NotTo(HaveOccurred())

			result, err := forum.Vote(f.ctx, author, entities.VoteTargetReply, reply.ID, 1)
			Expect(err).NotTo(HaveOccurred())
			Expect(result.Score).To(Equal(1))

			stored, err := f.forum.FindReply(f.ctx, reply.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(stored.Score).To(Equal(1))
		})

		It("refuses votes on own content", func() {
			post := newThread()
			_, err := forum.Vote(f.ctx, author, entities.VoteTargetPost, post.ID, 1)
			Expect(err).To(MatchError(errors.ErrCannotVoteOwn))
		})

		It("rejects values other than +1 and -1", func() {
			post := newThread()
			_, err := forum.Vote(f.ctx, reader, entities.VoteTargetPost, post.ID, 2)
			Expect(err).To(HaveOccurred())
		})
	})

	It("restricts pin and lock to moderators", func() {
		post := newThread()
		_, err := forum.SetPinned(f.ctx, author, post.ID, true)
		Expect(err).To(MatchError(errors.ErrForbidden))
		_, err = forum.SetLocked(f.ctx, reader, post.ID, true)
		Expect(err).To(MatchError(errors.ErrForbidden))
	})
})
