package userstore

const (
	ErrReadingStorage   = "failed to read user records"
	ErrWritingStorage   = "failed to write user records"
	ErrEncodingRecords  = "failed to encode user records"
	ErrMalformedContent = "stored user records are malformed, treating as empty"
)
