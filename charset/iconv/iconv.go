//go:build cgo

// Package iconv lets GNU iconv decode charsets that have no pure Go decoder.
// When importing, place an underscore _ in front to import for side-effects.
package iconv

import (
	"github.com/modfin/mailparse/charset"
	"gopkg.in/iconv.v1"
)

func init() {
	charset.RegisterFallback(Lookup)
}

// Lookup returns a decoder for name if iconv knows it.
func Lookup(name string) (charset.Decoder, bool) {
	cd, err := iconv.Open("utf-8", name)
	if err != nil {
		return nil, false
	}
	_ = cd.Close()

	return charset.DecoderFunc(func(b []byte) (string, error) {
		// a conversion descriptor carries shift state, one per call
		cd, err := iconv.Open("utf-8", name)
		if err != nil {
			return "", err
		}
		defer cd.Close()
		return cd.ConvString(string(b)), nil
	}), true
}
