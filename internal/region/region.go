// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package region maps two-letter region codes to the domain suffix that
// sites in that market commonly use. The suffix narrows a search query
// ("site:co.uk") and builds synthetic hostnames.
package region

import "strings"

// DefaultQualifier is returned for unknown, empty, and global regions.
const DefaultQualifier = "com"

// Global selects no market.
const Global = "GLOBAL"

var qualifiers = map[string]string{
	// Asia
	"CN": "com.cn", "JP": "co.jp", "KR": "co.kr", "IN": "co.in", "SG": "com.sg",
	"HK": "com.hk", "TW": "com.tw", "TH": "co.th", "MY": "com.my", "PH": "com.ph",
	"ID": "co.id", "VN": "com.vn", "BD": "com.bd", "PK": "com.pk", "LK": "lk",
	"MM": "com.mm", "KH": "com.kh", "LA": "la", "BN": "com.bn", "MN": "mn",
	"KZ": "kz", "UZ": "uz", "KG": "kg", "TJ": "tj", "TM": "tm", "AF": "af",
	"NP": "com.np", "BT": "bt", "MV": "mv",

	// Europe
	"UK": "co.uk", "DE": "de", "FR": "fr", "IT": "it", "ES": "es", "RU": "ru",
	"NL": "nl", "SE": "se", "NO": "no", "DK": "dk", "FI": "fi", "PL": "pl",
	"CZ": "cz", "HU": "hu", "AT": "at", "CH": "ch", "BE": "be", "IE": "ie",
	"PT": "pt", "GR": "gr", "RO": "ro", "BG": "bg", "HR": "hr", "SI": "si",
	"SK": "sk", "LT": "lt", "LV": "lv", "EE": "ee", "UA": "com.ua", "BY": "by",
	"MD": "md", "RS": "rs", "BA": "ba", "ME": "me", "MK": "mk", "AL": "al",
	"XK": "xk", "IS": "is", "LU": "lu", "MT": "com.mt", "CY": "com.cy",
	"MC": "mc", "AD": "ad", "SM": "sm", "VA": "va", "LI": "li",

	// North America
	"US": "com", "CA": "ca", "MX": "com.mx", "GT": "com.gt", "BZ": "bz",
	"SV": "com.sv", "HN": "hn", "NI": "com.ni", "CR": "cr", "PA": "com.pa",
	"CU": "cu", "JM": "com.jm", "HT": "ht", "DO": "com.do", "BS": "bs",
	"BB": "bb", "TT": "tt", "GD": "gd", "LC": "lc", "VC": "vc", "AG": "ag",
	"DM": "dm", "KN": "kn",

	// South America
	"BR": "com.br", "AR": "com.ar", "CL": "cl", "CO": "com.co", "PE": "com.pe",
	"VE": "co.ve", "EC": "com.ec", "BO": "com.bo", "PY": "com.py", "UY": "com.uy",
	"GY": "gy", "SR": "sr", "GF": "gf",

	// Oceania
	"AU": "com.au", "NZ": "co.nz", "FJ": "com.fj", "PG": "com.pg", "NC": "nc",
	"SB": "com.sb", "VU": "vu", "WS": "ws", "TO": "to", "KI": "ki", "TV": "tv",
	"NR": "nr", "PW": "pw", "MH": "mh", "FM": "fm",

	// Africa
	"ZA": "co.za", "NG": "com.ng", "EG": "com.eg", "KE": "co.ke", "GH": "com.gh",
	"ET": "et", "TZ": "co.tz", "UG": "co.ug", "ZW": "co.zw", "ZM": "co.zm",
	"BW": "co.bw", "NA": "com.na", "MW": "mw", "MZ": "co.mz", "MG": "mg",
	"MU": "mu", "SC": "sc", "RE": "re", "MA": "co.ma", "DZ": "dz", "TN": "com.tn",
	"LY": "ly", "SD": "sd", "SS": "ss", "ER": "er", "DJ": "dj", "SO": "so",
	"RW": "rw", "BI": "bi", "CD": "cd", "CG": "cg", "CF": "cf", "CM": "cm",
	"TD": "td", "NE": "ne", "ML": "ml", "BF": "bf", "CI": "ci", "LR": "lr",
	"SL": "sl", "GN": "gn", "GW": "gw", "SN": "sn", "GM": "gm", "CV": "cv",
	"MR": "mr", "GA": "ga", "GQ": "gq", "ST": "st", "AO": "ao", "LS": "ls",
	"SZ": "sz", "KM": "km",

	// Middle East
	"SA": "com.sa", "AE": "ae", "QA": "com.qa", "KW": "com.kw", "BH": "com.bh",
	"OM": "com.om", "YE": "ye", "IQ": "iq", "IR": "ir", "TR": "com.tr",
	"IL": "co.il", "PS": "ps", "JO": "jo", "LB": "com.lb", "SY": "sy",
	"AM": "am", "AZ": "az", "GE": "ge",
}

// MarketQualifierFor returns the domain suffix for code, compared
// case-insensitively. Unknown codes get DefaultQualifier.
func MarketQualifierFor(code string) string {
	if q, ok := qualifiers[strings.ToUpper(strings.TrimSpace(code))]; ok {
		return q
	}
	return DefaultQualifier
}

// Known reports whether code has its own entry in the table.
func Known(code string) bool {
	_, ok := qualifiers[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}

// IsGlobal reports whether code selects no particular market.
func IsGlobal(code string) bool {
	c := strings.ToUpper(strings.TrimSpace(code))
	return c == "" || c == Global
}
