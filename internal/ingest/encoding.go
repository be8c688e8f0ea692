package ingest

import (
	"bytes"
	"strings"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/encoding/simplifiedchinese"
	"golang.org/x/text/encoding/traditionalchinese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// DefaultSampleBytes is how much of an upload the detector inspects.
const DefaultSampleBytes = 10000

// Detector guesses the text encoding of a raw report upload.
type Detector struct{}

func NewDetector() *Detector {
	return &Detector{}
}

// Detect returns a usable encoding name for the sample. A Shift_JIS guess is
// widened to CP932: merchant exports routinely carry NEC/IBM extension
// characters that the strict JIS X 0208 set rejects. Ambiguous or empty
// samples fall back to UTF-8. Detect never fails and never touches any
// reader state; callers re-read the full buffer from the start.
func (d *Detector) Detect(sample []byte) string {
	if len(sample) == 0 {
		return "UTF-8"
	}
	best, err := chardet.NewTextDetector().DetectBest(sample)
	if err != nil || best == nil || best.Charset == "" {
		return "UTF-8"
	}
	if strings.Contains(strings.ToUpper(best.Charset), "SHIFT_JIS") {
		return "CP932"
	}
	return best.Charset
}

// decodings maps detector charset names onto x/text transforms. The ShiftJIS
// codec implements the Windows-31J (CP932) superset, which is exactly the
// widening Detect asks for.
var decodings = map[string]encoding.Encoding{
	"CP932":        japanese.ShiftJIS,
	"Shift_JIS":    japanese.ShiftJIS,
	"EUC-JP":       japanese.EUCJP,
	"ISO-2022-JP":  japanese.ISO2022JP,
	"EUC-KR":       korean.EUCKR,
	"GB-18030":     simplifiedchinese.GB18030,
	"GB18030":      simplifiedchinese.GB18030,
	"Big5":         traditionalchinese.Big5,
	"ISO-8859-1":   charmap.ISO8859_1,
	"ISO-8859-2":   charmap.ISO8859_2,
	"ISO-8859-5":   charmap.ISO8859_5,
	"ISO-8859-7":   charmap.ISO8859_7,
	"ISO-8859-9":   charmap.ISO8859_9,
	"KOI8-R":       charmap.KOI8R,
	"windows-1251": charmap.Windows1251,
	"windows-1252": charmap.Windows1252,
	"windows-1256": charmap.Windows1256,
	"IBM866":       charmap.CodePage866,
	"UTF-16BE":     unicode.UTF16(unicode.BigEndian, unicode.IgnoreBOM),
	"UTF-16LE":     unicode.UTF16(unicode.LittleEndian, unicode.IgnoreBOM),
}

// decodeText converts raw upload bytes to UTF-8 text under the named
// encoding. Decoding is lossy: byte sequences invalid for the encoding come
// through as U+FFFD instead of failing the upload. A leading BOM is dropped.
func decodeText(raw []byte, name string) string {
	var out []byte
	if enc, ok := decodings[name]; ok {
		decoded, _, err := transform.Bytes(enc.NewDecoder(), raw)
		if err != nil {
			decoded = bytes.ToValidUTF8(raw, []byte("�"))
		}
		out = decoded
	} else {
		// UTF-8 and anything unrecognized: keep the bytes, repair invalid
		// sequences the same way a lossy decoder would.
		out = bytes.ToValidUTF8(raw, []byte("�"))
	}
	out = stripBOM(out)
	return string(out)
}

func stripBOM(b []byte) []byte {
	return bytes.TrimPrefix(b, []byte{0xEF, 0xBB, 0xBF})
}
