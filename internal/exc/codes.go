package exc

const (
	CodeUnknownFatal     = "L0000"
	CodeFileNotFound     = "L0001"
	CodePermissionDenied = "L0002"
	CodeUnrecognizedByte = "L0003"
	CodeUnexpectedEOF    = "L0004"
	CodeTokenOverflow    = "L0005"
)

const (
	CodeEOF = "_EOF_"
)

var (
	defaultNonFatal = map[string]bool{}
)
