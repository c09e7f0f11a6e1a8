package repositories

// Pagination contém página e tamanho de página
type Pagination struct {
	Page     int // Página (começa em 1)
	PageSize int // Itens por página (default: 20, max: 100)
}

// Normalize aplica os limites padrão de paginação
func (p Pagination) Normalize() Pagination {
	if p.Page < 1 {
		p.Page = 1
	}
	if p.PageSize < 1 {
		p.PageSize = 20
	}
	if p.PageSize > 100 {
		p.PageSize = 100
	}
	return p
}

// Offset retorna o deslocamento da página
func (p Pagination) Offset() int {
	n := p.Normalize()
	return (n.Page - 1) * n.PageSize
}
