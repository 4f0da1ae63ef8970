package models

const (
	// DefaultLimit размер страницы по умолчанию.
	DefaultLimit = 100
	// MaxLimit максимальный размер страницы.
	MaxLimit = 100
)

// Page параметры пагинации skip/limit.
type Page struct {
	Skip  int
	Limit int
}

// Normalize приводит параметры пагинации к допустимым значениям.
func (p Page) Normalize() Page {
	if p.Skip < 0 {
		p.Skip = 0
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	return p
}
