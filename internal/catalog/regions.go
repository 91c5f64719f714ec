// Package catalog holds the static reference data for administrative regions
// and collateral categories. All lookups are pure and total: unknown keys
// yield empty results, never errors.
package catalog

// regions maps city → district → ordered neighborhoods.
var regions = map[string]map[string][]string{
	"서울특별시": {
		"강남구": {"역삼동", "삼성동", "대치동", "청담동", "논현동", "압구정동"},
		"서초구": {"서초동", "반포동", "방배동", "잠원동", "양재동"},
		"송파구": {"잠실동", "문정동", "가락동", "방이동"},
		"마포구": {"공덕동", "서교동", "합정동", "상암동"},
		"용산구": {"이태원동", "한남동", "이촌동"},
	},
	"경기도": {
		"성남시 분당구": {"정자동", "서현동", "판교동", "야탑동"},
		"수원시 영통구": {"영통동", "매탄동", "원천동"},
		"용인시 수지구": {"죽전동", "풍덕천동", "상현동"},
		"이천시":      {"부발읍", "마장면", "신둔면"},
		"양평군":      {"양평읍", "용문면", "강상면"},
	},
	"인천광역시": {
		"연수구": {"송도동", "연수동", "옥련동"},
		"남동구": {"구월동", "논현동", "간석동"},
		"부평구": {"부평동", "산곡동", "삼산동"},
	},
}

// cityOrder preserves display ordering; map iteration order is not stable.
var cityOrder = []string{"서울특별시", "경기도", "인천광역시"}

// districtOrder preserves district ordering per city.
var districtOrder = map[string][]string{
	"서울특별시": {"강남구", "서초구", "송파구", "마포구", "용산구"},
	"경기도":   {"성남시 분당구", "수원시 영통구", "용인시 수지구", "이천시", "양평군"},
	"인천광역시": {"연수구", "남동구", "부평구"},
}

// villages maps a subset of neighborhoods to their village ("리") sub-level.
// Neighborhoods absent from this map have no village selection.
var villages = map[string][]string{
	"부발읍": {"아미리", "무촌리", "신원리", "죽당리"},
	"마장면": {"오천리", "장암리", "각평리"},
	"신둔면": {"수광리", "용면리", "지석리"},
	"용문면": {"다문리", "마룡리", "광탄리"},
	"강상면": {"교평리", "병산리", "세월리"},
}

// Cities returns the ordered list of supported cities.
func Cities() []string {
	out := make([]string, len(cityOrder))
	copy(out, cityOrder)
	return out
}

// DistrictsOf returns the ordered districts of a city. Unknown cities yield
// an empty slice.
func DistrictsOf(city string) []string {
	order, ok := districtOrder[city]
	if !ok {
		return []string{}
	}
	out := make([]string, len(order))
	copy(out, order)
	return out
}

// NeighborhoodsOf returns the ordered neighborhoods of a district. Unknown
// keys yield an empty slice.
func NeighborhoodsOf(city, district string) []string {
	districts, ok := regions[city]
	if !ok {
		return []string{}
	}
	neighborhoods, ok := districts[district]
	if !ok {
		return []string{}
	}
	out := make([]string, len(neighborhoods))
	copy(out, neighborhoods)
	return out
}

// VillagesOf returns the ordered villages of a neighborhood, or an empty
// slice when the neighborhood has no village sub-level.
func VillagesOf(neighborhood string) []string {
	vs, ok := villages[neighborhood]
	if !ok {
		return []string{}
	}
	out := make([]string, len(vs))
	copy(out, vs)
	return out
}

// HasVillages reports whether the neighborhood carries a village sub-level.
func HasVillages(neighborhood string) bool {
	return len(villages[neighborhood]) > 0
}
