//go:build iconv && cgo

package main

import _ "github.com/modfin/mailparse/charset/iconv"
