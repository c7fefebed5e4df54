package errors

import (
	"errors"
	"fmt"
)

type ErrorDump struct {
	TopMessage string `json:"top_message"`
	Code       Code   `json:"code,omitempty"`

	Chain []string `json:"chain,omitempty"`

	UpstreamStatus   int    `json:"upstream_status,omitempty"`
	UpstreamEndpoint string `json:"upstream_endpoint,omitempty"`
}

// upstreamAware is satisfied by transport errors that carry HTTP metadata.
type upstreamAware interface {
	StatusCode() int
	Endpoint() string
}

func Dump(err error) ErrorDump {
	if err == nil {
		return ErrorDump{}
	}

	d := ErrorDump{
		TopMessage: err.Error(),
	}

	if te := As(err); te != nil {
		d.Code = te.Code()
	}

	for e := err; e != nil; e = errors.Unwrap(e) {
		d.Chain = append(d.Chain, fmt.Sprintf("%T: %v", e, e))
		if up, ok := e.(upstreamAware); ok && d.UpstreamStatus == 0 {
			d.UpstreamStatus = up.StatusCode()
			d.UpstreamEndpoint = up.Endpoint()
		}
	}

	return d
}
