package ports

// FileReader abstracts read-only access to the project tree.
//
//go:generate go run go.uber.org/mock/mockgen -source=files.go -destination=mocks/mock_files.go -package=mocks
type FileReader interface {
	// ReadText returns a file's textual content. A missing file is reported
	// with present=false and a nil error; absence is a valid outcome.
	ReadText(path string) (content string, present bool, err error)

	// SiblingPath derives the path of a file living next to base. Pure path
	// arithmetic, no I/O.
	SiblingPath(base, name string) string
}
