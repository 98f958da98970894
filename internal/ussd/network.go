package ussd

// Network identifies the carrier behind a session, resolved from the
// networkCode the gateway attaches to each request.
type Network struct {
	Code    string
	Name    string
	Country string

	known bool
}

// Placeholders for codes missing from the table. The raw code is kept on
// the Network so logs can still identify the carrier later.
const (
	UnknownNetworkName = "Unknown Network"
	UnknownCountry     = "Unknown"
)

// MCC+MNC pairs as delivered by the gateway. Sandbox traffic arrives as
// 99999.
var networks = map[string]Network{
	"62001": {Name: "MTN Ghana", Country: "Ghana"},
	"62002": {Name: "Vodafone Ghana", Country: "Ghana"},
	"62006": {Name: "AirtelTigo Ghana", Country: "Ghana"},
	"62120": {Name: "Airtel Nigeria", Country: "Nigeria"},
	"62130": {Name: "MTN Nigeria", Country: "Nigeria"},
	"62150": {Name: "Glo Nigeria", Country: "Nigeria"},
	"62160": {Name: "Etisalat Nigeria", Country: "Nigeria"},
	"63510": {Name: "MTN Rwanda", Country: "Rwanda"},
	"63513": {Name: "Tigo Rwanda", Country: "Rwanda"},
	"63514": {Name: "Airtel Rwanda", Country: "Rwanda"},
	"63601": {Name: "EthioTelecom Ethiopia", Country: "Ethiopia"},
	"63902": {Name: "Safaricom Kenya", Country: "Kenya"},
	"63903": {Name: "Airtel Kenya", Country: "Kenya"},
	"63907": {Name: "Orange Kenya", Country: "Kenya"},
	"63999": {Name: "Equitel Kenya", Country: "Kenya"},
	"64002": {Name: "Tigo Tanzania", Country: "Tanzania"},
	"64004": {Name: "Vodacom Tanzania", Country: "Tanzania"},
	"64005": {Name: "Airtel Tanzania", Country: "Tanzania"},
	"64101": {Name: "Airtel Uganda", Country: "Uganda"},
	"64110": {Name: "MTN Uganda", Country: "Uganda"},
	"64114": {Name: "Africell Uganda", Country: "Uganda"},
	"64501": {Name: "Airtel Zambia", Country: "Zambia"},
	"64502": {Name: "MTN Zambia", Country: "Zambia"},
	"65001": {Name: "TNM Malawi", Country: "Malawi"},
	"65010": {Name: "Airtel Malawi", Country: "Malawi"},
	"65501": {Name: "Vodacom South Africa", Country: "South Africa"},
	"65502": {Name: "Telkom South Africa", Country: "South Africa"},
	"65507": {Name: "CellC South Africa", Country: "South Africa"},
	"65510": {Name: "MTN South Africa", Country: "South Africa"},
	"99999": {Name: "Athena (Sandbox)", Country: "Sandbox"},
}

// NetworkFromCode resolves a gateway network code. Codes missing from the
// table come back with Known() false and the placeholder name, never a
// default carrier.
func NetworkFromCode(code string) Network {
	if n, ok := networks[code]; ok {
		n.Code = code
		n.known = true
		return n
	}
	return Network{Code: code, Name: UnknownNetworkName, Country: UnknownCountry}
}

// Known reports whether the code mapped to a carrier in the table.
func (n Network) Known() bool { return n.known }

func (n Network) String() string { return n.Name }
