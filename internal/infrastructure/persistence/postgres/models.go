package postgres

// UserModel é o model GORM para usuários
type UserModel struct {
	ID                 string `gorm:"type:uuid;primaryKey"`
	Email              string `gorm:"type:varchar(255);uniqueIndex;not null"`
	DisplayName        string `gorm:"type:varchar(100);not null"`
	PasswordHash       string `gorm:"type:varchar(255);not null"`
	PostalCode         string `gorm:"type:varchar(7);index"`
	IsResident         bool   `gorm:"not null;index"`
	ResidentVerifiedAt *int64
	IsSuperAdmin       bool `gorm:"not null"`
	AdminEvents        bool `gorm:"not null"`
	ForumModerator     bool `gorm:"not null"`
	AdminAlerts        bool `gorm:"not null"`
	AdminDirectory     bool `gorm:"not null"`
	IsBanned           bool `gorm:"not null;index"`
	BannedAt           *int64
	BanReason          string  `gorm:"type:varchar(500)"`
	AvatarURL          *string `gorm:"type:varchar(500)"`
	CreatedAt          int64   `gorm:"autoCreateTime;index"`
	UpdatedAt          int64   `gorm:"autoUpdateTime"`
	DeletedAt          *int64  `gorm:"index"` // Soft delete
}

func (UserModel) TableName() string {
	return "users"
}

// CategoryModel é o model GORM para categorias
type CategoryModel struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	Scope       string `gorm:"type:varchar(20);not null;uniqueIndex:idx_categories_scope_slug"`
	Name        string `gorm:"type:varchar(80);not null"`
	Slug        string `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_scope_slug"`
	Description string `gorm:"type:varchar(500)"`
	SortOrder   int    `gorm:"not null"`
	IsActive    bool   `gorm:"not null;index"`
	CreatedAt   int64  `gorm:"autoCreateTime"`
	UpdatedAt   int64  `gorm:"autoUpdateTime"`
}

func (CategoryModel) TableName() string {
	return "categories"
}

// EventModel é o model GORM para eventos
type EventModel struct {
	ID              string `gorm:"type:uuid;primaryKey"`
	Title           string `gorm:"type:varchar(200);not null"`
	Description     string `gorm:"type:text"`
	Category        string `gorm:"type:varchar(100);not null;index"`
	Venue           string `gorm:"type:varchar(200)"`
	StartAt         int64  `gorm:"not null;index"`
	EndAt           *int64
	Organizer       string  `gorm:"type:varchar(200)"`
	ContactEmail    *string `gorm:"type:varchar(255)"`
	URL             *string `gorm:"type:varchar(500)"`
	ImageURL        *string `gorm:"type:varchar(500)"`
	Status          string  `gorm:"type:varchar(20);not null;index"`
	RejectionReason string  `gorm:"type:varchar(500)"`
	ReviewedBy      *string `gorm:"type:uuid"`
	ReviewedAt      *int64
	CreatedBy       string `gorm:"type:uuid;not null;index"`
	CreatedAt       int64  `gorm:"autoCreateTime"`
	UpdatedAt       int64  `gorm:"autoUpdateTime"`
	DeletedAt       *int64 `gorm:"index"` // Soft delete
}

func (EventModel) TableName() string {
	return "events"
}

// PostModel é o model GORM para tópicos do fórum
type PostModel struct {
	ID             string  `gorm:"type:uuid;primaryKey"`
	Category       string  `gorm:"type:varchar(100);not null;index"`
	AuthorID       string  `gorm:"type:uuid;not null;index"`
	Title          string  `gorm:"type:varchar(200);not null"`
	Body           string  `gorm:"type:text;not null"`
	Score          int     `gorm:"not null"`
	ReplyCount     int     `gorm:"not null"`
	IsPinned       bool    `gorm:"not null"`
	IsLocked       bool    `gorm:"not null"`
	LastActivityAt int64   `gorm:"not null;index"`
	DeletedAt      *int64  `gorm:"index"` // Soft delete
	DeletedBy      *string `gorm:"type:uuid"`
	DeleteReason   string  `gorm:"type:varchar(500)"`
	CreatedAt      int64   `gorm:"autoCreateTime"`
	UpdatedAt      int64   `gorm:"autoUpdateTime"`
}

func (PostModel) TableName() string {
	return "forum_posts"
}

// ReplyModel é o model GORM para respostas do fórum
type ReplyModel struct {
	ID           string  `gorm:"type:uuid;primaryKey"`
	PostID       string  `gorm:"type:uuid;not null;index"`
	AuthorID     string  `gorm:"type:uuid;not null;index"`
	Body         string  `gorm:"type:text;not null"`
	Score        int     `gorm:"not null"`
	DeletedAt    *int64  `gorm:"index"` // Soft delete
	DeletedBy    *string `gorm:"type:uuid"`
	DeleteReason string  `gorm:"type:varchar(500)"`
	CreatedAt    int64   `gorm:"autoCreateTime;index"`
	UpdatedAt    int64   `gorm:"autoUpdateTime"`
}

func (ReplyModel) TableName() string {
	return "forum_replies"
}

// VoteModel é o model GORM para votos (um por usuário e alvo)
type VoteModel struct {
	UserID     string `gorm:"type:uuid;primaryKey"`
	TargetType string `gorm:"type:varchar(10);primaryKey"`
	TargetID   string `gorm:"type:uuid;primaryKey"`
	Value      int    `gorm:"not null"`
	CreatedAt  int64  `gorm:"autoCreateTime"`
}

func (VoteModel) TableName() string {
	return "forum_votes"
}

// BusinessModel é o model GORM para o diretório
type BusinessModel struct {
	ID          string `gorm:"type:uuid;primaryKey"`
	Name        string `gorm:"type:varchar(120);not null"`
	Slug        string `gorm:"type:varchar(150);uniqueIndex;not null"`
	Category    string `gorm:"type:varchar(100);not null;index"`
	Description string `gorm:"type:text"`
	Address     string `gorm:"type:varchar(300)"`
	Phone       string `gorm:"type:varchar(40)"`
	Email       string `gorm:"type:varchar(255)"`
	Website     string `gorm:"type:varchar(500)"`
	Hours       string `gorm:"type:varchar(300)"`
	IsActive    bool   `gorm:"not null;index"`
	IsFeatured  bool   `gorm:"not null"`
	CreatedAt   int64  `gorm:"autoCreateTime"`
	UpdatedAt   int64  `gorm:"autoUpdateTime"`
	DeletedAt   *int64 `gorm:"index"` // Soft delete
}

func (BusinessModel) TableName() string {
	return "businesses"
}

// AlertModel é o model GORM para alertas
type AlertModel struct {
	ID         string `gorm:"type:uuid;primaryKey"`
	Title      string `gorm:"type:varchar(200);not null"`
	Message    string `gorm:"type:text;not null"`
	Severity   string `gorm:"type:varchar(20);not null"`
	Category   string `gorm:"type:varchar(20);not null"`
	ExpiresAt  *int64 `gorm:"index"`
	IsArchived bool   `gorm:"not null;index"`
	ArchivedAt *int64
	CreatedBy  string `gorm:"type:uuid;not null"`
	CreatedAt  int64  `gorm:"autoCreateTime;index"`
	UpdatedAt  int64  `gorm:"autoUpdateTime"`
}

func (AlertModel) TableName() string {
	return "alerts"
}

// ReportModel é o model GORM para denúncias
type ReportModel struct {
	ID         string  `gorm:"type:uuid;primaryKey"`
	ReporterID string  `gorm:"type:uuid;not null;index:idx_reports_reporter_target"`
	TargetType string  `gorm:"type:varchar(20);not null;index:idx_reports_reporter_target"`
	TargetID   string  `gorm:"type:uuid;not null;index:idx_reports_reporter_target"`
	Reason     string  `gorm:"type:varchar(30);not null"`
	Details    string  `gorm:"type:text"`
	Status     string  `gorm:"type:varchar(20);not null;index"`
	Resolution string  `gorm:"type:text"`
	ResolvedBy *string `gorm:"type:uuid"`
	ResolvedAt *int64
	CreatedAt  int64 `gorm:"autoCreateTime;index"`
	UpdatedAt  int64 `gorm:"autoUpdateTime"`
}

func (ReportModel) TableName() string {
	return "reports"
}

// AllModels lista os models migrados automaticamente
func AllModels() []any {
	return []any{
		&UserModel{},
		&CategoryModel{},
		&EventModel{},
		&PostModel{},
		&ReplyModel{},
		&VoteModel{},
		&BusinessModel{},
		&AlertModel{},
		&ReportModel{},
	}
}
