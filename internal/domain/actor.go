package domain

// Actor — аутентифицированный пользователь, от имени которого выполняется запрос.
type Actor struct {
	ID    string
	Name  string
	Email string
}
