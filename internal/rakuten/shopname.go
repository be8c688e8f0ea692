package rakuten

import "regexp"

// RPP exports are named rpp_keyword_reports_<shop>_<date>.csv by RMS.
var shopPattern = regexp.MustCompile(`rpp_keyword_reports_([^_]+)_`)

// ShopName extracts the shop identifier embedded in an RPP export filename.
// Filenames that do not follow the RMS convention come back as-is with
// found false, so callers can still show something.
func ShopName(filename string) (name string, found bool) {
	if m := shopPattern.FindStringSubmatch(filename); m != nil {
		return m[1], true
	}
	return filename, false
}
