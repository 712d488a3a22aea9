package redis

import (
	"fmt"

	"github.com/joomcode/errorx"
)

// Reply values are plain Go values travelling the completion channel:
//
//	nil            - null bulk or null array
//	string         - simple (status) string
//	int64          - integer
//	[]byte         - bulk string
//	[]interface{}  - array
//	*errorx.Error  - error reply or client-side failure
//
// OK is the reply of commands that only acknowledge.
const OK = "OK"

// AsError casts a reply value to error, if it is one.
func AsError(res interface{}) error {
	err, _ := res.(error)
	return err
}

// AsErrorx casts a reply value to *errorx.Error. A reply that is some
// other error implementation is a contract violation of the connection
// layer.
func AsErrorx(res interface{}) *errorx.Error {
	if res == nil {
		return nil
	}
	err, ok := res.(*errorx.Error)
	if !ok {
		if _, isErr := res.(error); isErr {
			panic(fmt.Sprintf("reply should be either *errorx.Error or not an error at all, got %#v", res))
		}
		return nil
	}
	return err
}

// IntReply extracts an integer reply value.
func IntReply(res interface{}) (int64, bool) {
	v, ok := res.(int64)
	return v, ok
}

// ArrayReply extracts an array reply value.
func ArrayReply(res interface{}) ([]interface{}, bool) {
	v, ok := res.([]interface{})
	return v, ok
}
