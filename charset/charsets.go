package charset

import (
	"github.com/cention-sany/utf7"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
)

// builtin is the table the registry is seeded with.
var builtin = map[string]encoding.Encoding{
	// ISO character sets
	"iso-8859-1":  charmap.ISO8859_1,
	"iso-8859-2":  charmap.ISO8859_2,
	"iso-8859-3":  charmap.ISO8859_3,
	"iso-8859-4":  charmap.ISO8859_4,
	"iso-8859-5":  charmap.ISO8859_5,
	"iso-8859-6":  charmap.ISO8859_6,
	"iso-8859-7":  charmap.ISO8859_7,
	"iso-8859-8":  charmap.ISO8859_8,
	"iso-8859-9":  charmap.ISO8859_9,
	"iso-8859-10": charmap.ISO8859_10,
	"iso-8859-13": charmap.ISO8859_13,
	"iso-8859-14": charmap.ISO8859_14,
	"iso-8859-15": charmap.ISO8859_15,
	"iso-8859-16": charmap.ISO8859_16,

	// Windows character sets
	"windows-1250": charmap.Windows1250,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"windows-1253": charmap.Windows1253,
	"windows-1254": charmap.Windows1254,
	"windows-1255": charmap.Windows1255,
	"windows-1256": charmap.Windows1256,
	"windows-1257": charmap.Windows1257,
	"windows-1258": charmap.Windows1258,
	"windows-874":  charmap.Windows874,

	// DOS character sets
	"ibm437":    charmap.CodePage437,
	"ibm850":    charmap.CodePage850,
	"ibm852":    charmap.CodePage852,
	"ibm855":    charmap.CodePage855,
	"ibm858":    charmap.CodePage858,
	"ibm866":    charmap.CodePage866,
	"koi8-r":    charmap.KOI8R,
	"koi8-u":    charmap.KOI8U,
	"macintosh": charmap.Macintosh,

	// Japanese character sets
	"shift_jis":   japanese.ShiftJIS,
	"euc-jp":      japanese.EUCJP,
	"iso-2022-jp": japanese.ISO2022JP,

	// Korean character sets
	"euc-kr": korean.EUCKR,

	// Chinese character sets
	"gb2312":     simplifiedchinese.GB18030, // superset of GB2312
	"gbk":        simplifiedchinese.GBK,
	"gb18030":    simplifiedchinese.GB18030,
	"hz-gb-2312": simplifiedchinese.HZGB2312,
	"big5":       traditionalchinese.Big5,

	// Unicode encodings
	"utf-7":    utf7.UTF7,
	"utf-16be": unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"utf-16le": unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
	"utf-16":   unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM),
}

// aliases maps non-standard names seen in the wild onto builtin names.
var aliases = map[string]string{
	"ascii":             "us-ascii",
	"ansi_x3.4-1968":    "us-ascii",
	"646":               "us-ascii",
	"latin1":            "iso-8859-1",
	"l1":                "iso-8859-1",
	"iso8859-1":         "iso-8859-1",
	"iso_8859-1":        "iso-8859-1",
	"latin2":            "iso-8859-2",
	"latin3":            "iso-8859-3",
	"latin4":            "iso-8859-4",
	"latin5":            "iso-8859-9",
	"latin6":            "iso-8859-10",
	"latin7":            "iso-8859-13",
	"latin8":            "iso-8859-14",
	"latin9":            "iso-8859-15",
	"latin10":           "iso-8859-16",
	"cp1250":            "windows-1250",
	"cp1251":            "windows-1251",
	"cp1252":            "windows-1252",
	"cp1253":            "windows-1253",
	"cp1254":            "windows-1254",
	"cp1255":            "windows-1255",
	"cp1256":            "windows-1256",
	"cp1257":            "windows-1257",
	"cp1258":            "windows-1258",
	"cp874":             "windows-874",
	"ms874":             "windows-874",
	"tis-620":           "windows-874",
	"ms-ansi":           "windows-1252",
	"cp437":             "ibm437",
	"cp850":             "ibm850",
	"cp852":             "ibm852",
	"cp866":             "ibm866",
	"koi8r":             "koi8-r",
	"koi8u":             "koi8-u",
	"shift-jis":         "shift_jis",
	"sjis":              "shift_jis",
	"ms_kanji":          "shift_jis",
	"csshiftjis":        "shift_jis",
	"x-sjis":            "shift_jis",
	"ms932":             "shift_jis",
	"cp932":             "shift_jis",
	"eucjp":             "euc-jp",
	"iso2022jp":         "iso-2022-jp",
	"euckr":             "euc-kr",
	"5601":              "euc-kr",
	"ks_c_5601":         "euc-kr",
	"ks_c_5601-1987":    "euc-kr",
	"cp949":             "euc-kr",
	"ansi936":           "gb2312",
	"cp936":             "gbk",
	"ms936":             "gbk",
	"ansi950":           "big5",
	"cp950":             "big5",
	"big-5":             "big5",
	"utf8":              "utf-8",
	"utf7":              "utf-7",
	"unicode-1-1-utf-7": "utf-7",
	"csunicode11utf7":   "utf-7",
	"utf16":             "utf-16",
	"utf16be":           "utf-16be",
	"utf16le":           "utf-16le",
}
