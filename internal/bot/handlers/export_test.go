package handlers

var (
	CommandArgs = commandArgs
	ImageFileID = imageFileID
	BatchKey    = batchKey
)

// SetFileURLBase points photo downloads at base and returns a restore func.
func SetFileURLBase(base string) func() {
	prev := fileURLBase
	fileURLBase = base
	return func() { fileURLBase = prev }
}
