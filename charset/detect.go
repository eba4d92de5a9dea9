package charset

import (
	"unicode/utf8"

	"github.com/gogs/chardet"
)

// Detect guesses the charset of undeclared text. Valid UTF-8 short-circuits
// the statistical detector. Confidence ranges from 0 to 100.
func Detect(b []byte) (name string, confidence int, err error) {
	if utf8.Valid(b) {
		return "utf-8", 100, nil
	}
	res, err := chardet.NewTextDetector().DetectBest(b)
	if err != nil {
		return "", 0, err
	}
	return Normalize(res.Charset), res.Confidence, nil
}

// DecodeDetected decodes b with the detected charset, or as Latin-1 when
// detection fails.
func DecodeDetected(b []byte) string {
	name, _, err := Detect(b)
	if err != nil {
		return decodeLatin1(b)
	}
	return Decode(name, b)
}
