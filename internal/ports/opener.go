package ports

// Opener shows a finished file in the host's default viewer
type Opener interface {
	Open(path string) error
}
