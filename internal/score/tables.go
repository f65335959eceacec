package score

// Category is a coarse place taxonomy bucket used by the type dimension.
type Category string

const (
	CategoryUnknown        Category = ""
	CategoryReligious      Category = "religious"
	CategoryCultural       Category = "cultural"
	CategoryRecreational   Category = "recreational"
	CategoryNatural        Category = "natural"
	CategoryTransportation Category = "transportation"
	CategoryCommercial     Category = "commercial"
	CategoryHistorical     Category = "historical"
	CategoryEducational    Category = "educational"
	CategoryMedical        Category = "medical"
	CategoryGovernment     Category = "government"
	CategorySports         Category = "sports"
	CategoryEntertainment  Category = "entertainment"
)

// categoryKeywords drives name classification. Membership is substring-based
// on the normalized name, so CJK terms match without tokenization.
var categoryKeywords = map[Category][]string{
	CategoryReligious: {
		"church", "cathedral", "temple", "shrine", "mosque", "monastery",
		"abbey", "chapel", "basilica", "synagogue", "pagoda",
		"寺", "神社", "教会", "大聖堂", "성당", "사원", "مسجد",
	},
	CategoryCultural: {
		"museum", "gallery", "exhibition", "library", "theater", "theatre",
		"opera", "memorial", "monument",
		"博物館", "博物馆", "博物院", "美術館", "美术馆", "图书馆", "図書館", "박물관", "متحف",
	},
	CategoryRecreational: {
		"park", "garden", "playground", "zoo", "aquarium", "beach",
		"公園", "公园", "庭園", "동물원", "공원",
	},
	CategoryNatural: {
		"mountain", "mount", "lake", "river", "falls", "waterfall", "forest",
		"island", "valley", "canyon", "bay", "cape",
		"山", "湖", "川", "河", "島", "섬", "جبل",
	},
	CategoryTransportation: {
		"station", "airport", "terminal", "port", "bridge", "railway", "metro",
		"subway", "ferry", "pier",
		"駅", "站", "空港", "机场", "大橋", "大桥", "역", "공항", "مطار",
	},
	CategoryCommercial: {
		"market", "mall", "store", "shop", "plaza", "bazaar", "department",
		"市場", "市场", "商店", "백화점", "سوق",
	},
	CategoryHistorical: {
		"castle", "palace", "fort", "fortress", "ruins", "tower", "gate",
		"wall", "tomb",
		"城", "宮", "宫", "遺跡", "遗址", "궁전", "قلعة",
	},
	CategoryEducational: {
		"university", "college", "school", "institute", "academy",
		"大学", "大學", "学校", "學校", "대학교", "جامعة",
	},
	CategoryMedical: {
		"hospital", "clinic", "infirmary",
		"病院", "医院", "병원", "مستشفى",
	},
	CategoryGovernment: {
		"city hall", "parliament", "embassy", "courthouse", "ministry",
		"市役所", "政府", "大使館", "시청",
	},
	CategorySports: {
		"stadium", "arena", "gymnasium", "velodrome", "racecourse",
		"スタジアム", "体育場", "体育场", "경기장", "ملعب",
	},
	CategoryEntertainment: {
		"cinema", "casino", "amusement", "nightclub", "karaoke",
		"映画館", "电影院", "영화관",
	},
}

// categoryOrder fixes iteration order so classification is deterministic
// when a name matches keywords from more than one category.
var categoryOrder = []Category{
	CategoryReligious, CategoryCultural, CategoryRecreational, CategoryNatural,
	CategoryTransportation, CategoryCommercial, CategoryHistorical,
	CategoryEducational, CategoryMedical, CategoryGovernment, CategorySports,
	CategoryEntertainment,
}

// relatedCategories holds the adjacency table for partial type credit.
var relatedCategories = map[Category][]Category{
	CategoryReligious:      {CategoryHistorical, CategoryCultural},
	CategoryCultural:       {CategoryHistorical, CategoryEducational, CategoryEntertainment},
	CategoryRecreational:   {CategoryNatural, CategorySports, CategoryEntertainment},
	CategoryNatural:        {CategoryRecreational},
	CategoryTransportation: {CategoryCommercial},
	CategoryCommercial:     {CategoryTransportation, CategoryEntertainment},
	CategoryHistorical:     {CategoryReligious, CategoryCultural},
	CategoryEducational:    {CategoryCultural},
	CategoryMedical:        {CategoryGovernment},
	CategoryGovernment:     {CategoryMedical},
	CategorySports:         {CategoryRecreational, CategoryEntertainment},
	CategoryEntertainment:  {CategoryCultural, CategorySports, CategoryCommercial},
}

// categoryDistanceBonus loosens the geographic band for place kinds whose
// recorded coordinate tends to drift from the visitor-facing one (a station
// entrance vs. its platform centroid, a museum wing vs. its campus).
var categoryDistanceBonus = map[Category]float64{
	CategoryTransportation: 0.05,
	CategoryCultural:       0.03,
	CategoryNatural:        0.03,
	CategoryCommercial:     0.01,
}

// synonymTable expands tokens before the synonym Jaccard pass. Every member
// of a group is expanded to the full group.
var synonymTable = [][]string{
	{"temple", "shrine", "monastery", "pagoda"},
	{"church", "cathedral", "chapel", "basilica"},
	{"museum", "gallery", "exhibition"},
	{"park", "garden", "gardens"},
	{"mount", "mountain", "mt", "peak"},
	{"lake", "pond", "lagoon"},
	{"station", "terminal", "depot"},
	{"street", "road", "avenue", "boulevard"},
	{"square", "plaza", "place"},
	{"castle", "palace", "fortress", "fort"},
	{"saint", "st"},
	{"theater", "theatre"},
	{"harbor", "harbour", "port"},
	{"center", "centre"},
	{"tower", "towers"},
	{"university", "college"},
	{"market", "bazaar"},
}

// crossScriptSynonyms links CJK place terms with their Latin family so that
// a script mismatch between editions still earns a small bonus.
var crossScriptSynonyms = map[string][]string{
	"寺":   {"temple", "monastery", "shrine"},
	"神社":  {"shrine", "temple"},
	"宮":   {"palace", "shrine"},
	"城":   {"castle", "fortress"},
	"駅":   {"station"},
	"站":   {"station"},
	"橋":   {"bridge"},
	"桥":   {"bridge"},
	"山":   {"mount", "mountain"},
	"湖":   {"lake"},
	"公園":  {"park"},
	"公园":  {"park"},
	"博物館": {"museum"},
	"博物馆": {"museum"},
	"美術館": {"gallery", "museum"},
	"大学":  {"university"},
	"塔":   {"tower"},
	"島":   {"island"},
}

// proximityCues shift weight toward geography; typeCues toward the taxonomy.
var (
	proximityCues = []string{"near", "nearby", "close to", "around"}
	typeCues      = []string{"type", "kind", "sort of"}
	exactCues     = []string{"exact", "exactly", "specific", "specifically"}
)
