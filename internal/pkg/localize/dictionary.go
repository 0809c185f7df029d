package localize

// Entry is one dictionary translation pair.
type Entry struct {
	Ko string
	En string
}

// Terms maps Japanese smoking-area vocabulary to Korean/English equivalents.
func Terms() map[string]Entry {
	return map[string]Entry{
		// place types
		"喫煙所":      {Ko: "흡연구역", En: "Smoking Area"},
		"喫煙室":      {Ko: "흡연실", En: "Smoking Room"},
		"喫煙スペース":   {Ko: "흡연 공간", En: "Smoking Space"},
		"喫煙コーナー":   {Ko: "흡연 코너", En: "Smoking Corner"},
		"灰皿":       {Ko: "재떨이", En: "Ashtray"},
		"喫煙ブース":    {Ko: "흡연 부스", En: "Smoking Booth"},
		"屋外喫煙所":    {Ko: "실외 흡연구역", En: "Outdoor Smoking Area"},
		"屋内喫煙所":    {Ko: "실내 흡연구역", En: "Indoor Smoking Area"},

		// facility types
		"駅":        {Ko: "역", En: "Station"},
		"空港":       {Ko: "공항", En: "Airport"},
		"公園":       {Ko: "공원", En: "Park"},
		"ビル":       {Ko: "빌딩", En: "Building"},
		"デパート":     {Ko: "백화점", En: "Department Store"},
		"ショッピングモール": {Ko: "쇼핑몰", En: "Shopping Mall"},
		"コンビニ":     {Ko: "편의점", En: "Convenience Store"},
		"レストラン":    {Ko: "레스토랑", En: "Restaurant"},
		"居酒屋":      {Ko: "이자카야", En: "Izakaya (Japanese Bar)"},
		"カフェ":      {Ko: "카페", En: "Cafe"},
		"ホテル":      {Ko: "호텔", En: "Hotel"},
		"温泉":       {Ko: "온천", En: "Hot Spring"},
		"病院":       {Ko: "병원", En: "Hospital"},
		"図書館":      {Ko: "도서관", En: "Library"},
		"市役所":      {Ko: "시청", En: "City Hall"},
		"区役所":      {Ko: "구청", En: "Ward Office"},
		"銀行":       {Ko: "은행", En: "Bank"},
		"郵便局":      {Ko: "우체국", En: "Post Office"},
		"ファミレス":    {Ko: "패밀리 레스토랑", En: "Family Restaurant"},
		"パーキング":    {Ko: "주차장", En: "Parking"},
		"入口":       {Ko: "입구", En: "Entrance"},
		"出口":       {Ko: "출구", En: "Exit"},
		"裏":        {Ko: "뒤편", En: "Behind/Back"},
		"前":        {Ko: "앞", En: "Front"},
		"横":        {Ko: "옆", En: "Side"},
		"近く":       {Ko: "근처", En: "Near"},

		// well-known chains
		"セブンイレブン":  {Ko: "세븐일레븐", En: "Seven-Eleven"},
		"ローソン":     {Ko: "로손", En: "Lawson"},
		"ファミリーマート": {Ko: "패밀리마트", En: "FamilyMart"},
		"マクドナルド":   {Ko: "맥도날드", En: "McDonald's"},
		"スターバックス":  {Ko: "스타벅스", En: "Starbucks"},
		"ドトール":     {Ko: "도토루 커피", En: "Doutor Coffee"},
		"タリーズ":     {Ko: "탈리스 커피", En: "Tully's Coffee"},
		"イオン":      {Ko: "이온", En: "AEON"},
		"ドンキホーテ":   {Ko: "돈키호테", En: "Don Quijote"},
		"ビックカメラ":   {Ko: "빅카메라", En: "Bic Camera"},
		"ヨドバシカメラ":  {Ko: "요도바시 카메라", En: "Yodobashi Camera"},
		"ユニクロ":     {Ko: "유니클로", En: "UNIQLO"},
		"ハウステンボス":  {Ko: "하우스텐보스", En: "Huis Ten Bosch"},
		"ディズニー":    {Ko: "디즈니", En: "Disney"},
		"USJ":      {Ko: "USJ", En: "Universal Studios Japan"},

		// directions and positions
		"東":  {Ko: "동쪽", En: "East"},
		"西":  {Ko: "서쪽", En: "West"},
		"南":  {Ko: "남쪽", En: "South"},
		"北":  {Ko: "북쪽", En: "North"},
		"中央": {Ko: "중앙", En: "Central"},
		"階":  {Ko: "층", En: "Floor"},
		"地下": {Ko: "지하", En: "Underground/Basement"},
		"屋上": {Ko: "옥상", En: "Rooftop"},

		// administrative divisions
		"都":  {Ko: "도", En: "Metropolis"},
		"道":  {Ko: "도", En: "Prefecture"},
		"府":  {Ko: "부", En: "Urban Prefecture"},
		"県":  {Ko: "현", En: "Prefecture"},
		"市":  {Ko: "시", En: "City"},
		"区":  {Ko: "구", En: "Ward"},
		"町":  {Ko: "정/마치", En: "Town"},
		"村":  {Ko: "촌", En: "Village"},
		"丁目": {Ko: "쵸메", En: "Block"},
		"番地": {Ko: "번지", En: "Lot Number"},
	}
}

// Regions maps Japanese region, city, and district names.
func Regions() map[string]Entry {
	return map[string]Entry{
		// regions
		"北海道": {Ko: "홋카이도", En: "Hokkaido"},
		"東北":  {Ko: "도호쿠", En: "Tohoku"},
		"関東":  {Ko: "간토", En: "Kanto"},
		"中部":  {Ko: "주부", En: "Chubu"},
		"近畿":  {Ko: "긴키", En: "Kinki"},
		"関西":  {Ko: "간사이", En: "Kansai"},
		"中国":  {Ko: "주고쿠", En: "Chugoku"},
		"四国":  {Ko: "시코쿠", En: "Shikoku"},
		"九州":  {Ko: "규슈", En: "Kyushu"},
		"沖縄":  {Ko: "오키나와", En: "Okinawa"},

		// major cities
		"東京":  {Ko: "도쿄", En: "Tokyo"},
		"大阪":  {Ko: "오사카", En: "Osaka"},
		"京都":  {Ko: "교토", En: "Kyoto"},
		"横浜":  {Ko: "요코하마", En: "Yokohama"},
		"名古屋": {Ko: "나고야", En: "Nagoya"},
		"札幌":  {Ko: "삿포로", En: "Sapporo"},
		"福岡":  {Ko: "후쿠오카", En: "Fukuoka"},
		"神戸":  {Ko: "고베", En: "Kobe"},
		"仙台":  {Ko: "센다이", En: "Sendai"},
		"広島":  {Ko: "히로시마", En: "Hiroshima"},
		"長崎":  {Ko: "나가사키", En: "Nagasaki"},
		"奈良":  {Ko: "나라", En: "Nara"},
		"鳥取":  {Ko: "돗토리", En: "Tottori"},
		"金沢":  {Ko: "가나자와", En: "Kanazawa"},
		"新潟":  {Ko: "니가타", En: "Niigata"},

		// major districts
		"渋谷":  {Ko: "시부야", En: "Shibuya"},
		"新宿":  {Ko: "신주쿠", En: "Shinjuku"},
		"池袋":  {Ko: "이케부쿠로", En: "Ikebukuro"},
		"品川":  {Ko: "시나가와", En: "Shinagawa"},
		"銀座":  {Ko: "긴자", En: "Ginza"},
		"秋葉原": {Ko: "아키하바라", En: "Akihabara"},
		"浅草":  {Ko: "아사쿠사", En: "Asakusa"},
		"上野":  {Ko: "우에노", En: "Ueno"},
		"六本木": {Ko: "롯폰기", En: "Roppongi"},
		"原宿":  {Ko: "하라주쿠", En: "Harajuku"},
		"梅田":  {Ko: "우메다", En: "Umeda"},
		"難波":  {Ko: "난바", En: "Namba"},
		"心斎橋": {Ko: "신사이바시", En: "Shinsaibashi"},
		"天王寺": {Ko: "텐노지", En: "Tennoji"},
		"博多":  {Ko: "하카타", En: "Hakata"},
		"天神":  {Ko: "텐진", En: "Tenjin"},
	}
}

// kanjiNumerals maps kanji digits one through ten to Arabic digits.
var kanjiNumerals = []struct {
	Kanji string
	Digit string
}{
	{"一", "1"}, {"二", "2"}, {"三", "3"}, {"四", "4"}, {"五", "5"},
	{"六", "6"}, {"七", "7"}, {"八", "8"}, {"九", "9"}, {"十", "10"},
}
