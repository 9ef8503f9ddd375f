package components

// ColumnType identifies the type of content in a column
type ColumnType int

const (
	ColumnTypeMovies       ColumnType = iota // A source page or saved list
	ColumnTypeCast                           // Cast of one movie
	ColumnTypePersonMovies                   // Movies of one cast member
)

// IsMovies reports whether rows are movies
func (t ColumnType) IsMovies() bool {
	return t == ColumnTypeMovies || t == ColumnTypePersonMovies
}
