package glimpse

//go:generate go tool stringer -type=Key -trimprefix=Key

type Key uint8

const (
	KeyUnknown Key = iota
	KeyW
	KeyA
	KeyS
	KeyD
	KeyM
	KeySpace
	KeyLeftControl
	KeyLeftShift
	KeyEscape
)
