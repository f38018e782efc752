package lfclient

// An Error reprensents an HTTP error returned by the server.
type Error struct {
	StatusCode int       `json:"-"`
	Err        errorBody `json:"error"`
}

type errorBody struct {
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

func (e *Error) Error() string {
	return e.Err.Message
}

// Tag returns the machine readable error tag, if any.
func (e *Error) Tag() string {
	return e.Err.Tag
}
