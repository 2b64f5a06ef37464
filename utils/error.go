package utils

import "errors"

var (
	ErrorRecordNotFound   = errors.New("record not found")
	ErrorNotAuthenticated = errors.New("not authenticated")
)

func ErrorPanic(err error) {
	if err != nil {
		panic(err)
	}
}
