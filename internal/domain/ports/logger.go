package ports

// Logger é o logger estruturado usado pelos serviços
type Logger interface {
	Info(msg string, args ...any)
	Error(msg string, args ...any)
	Debug(msg string, args ...any)
	Warn(msg string, args ...any)
	With(args ...any) Logger
}

// auditKey marca linhas de auditoria (ações administrativas e de moderação)
const auditKey = "audit"

// Audit retorna um logger cujas linhas ficam marcadas como auditoria
func Audit(l Logger) Logger {
	return l.With(auditKey, true)
}
