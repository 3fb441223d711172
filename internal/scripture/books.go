package scripture

import "fmt"

// BookID is the canonical index of a book in the corpus. Old Testament books
// occupy 0-38, New Testament books 39-65.
type BookID int

// BookCount is the number of books in a complete corpus.
const BookCount = 66

// Alias maps one surface spelling, including common mis-transcriptions, to a book.
type Alias struct {
	Name string
	Book BookID
}

// bookNames holds the display name of every canonical book.
var bookNames = [BookCount]string{
	"창세기", "출애굽기", "레위기", "민수기", "신명기",
	"여호수아", "사사기", "룻기", "사무엘상", "사무엘하",
	"열왕기상", "열왕기하", "역대상", "역대하", "에스라",
	"느헤미야", "에스더", "욥기", "시편", "잠언",
	"전도서", "아가", "이사야", "예레미야", "예레미야애가",
	"에스겔", "다니엘", "호세아", "요엘", "아모스",
	"오바댜", "요나", "미가", "나훔", "하박국",
	"스바냐", "학개", "스가랴", "말라기",
	"마태복음", "마가복음", "누가복음", "요한복음",
	"사도행전", "로마서", "고린도전서", "고린도후서",
	"갈라디아서", "에베소서", "빌립보서", "골로새서",
	"데살로니가전서", "데살로니가후서", "디모데전서", "디모데후서",
	"디도서", "빌레몬서", "히브리서", "야고보서",
	"베드로전서", "베드로후서", "요한일서", "요한이서",
	"요한삼서", "유다서", "요한계시록",
}

// BookName returns the display name for id, or a numbered placeholder when id
// is outside the canonical range.
func BookName(id BookID) string {
	if id >= 0 && int(id) < len(bookNames) {
		return bookNames[id]
	}
	return fmt.Sprintf("책%d", int(id))
}

// DefaultAliases is the alias table in declaration order. Order breaks ties
// between aliases of equal length.
var DefaultAliases = []Alias{
	// Old Testament
	{"창세기", 0}, {"창세", 0}, {"창색이", 0}, {"상세기", 0},
	{"출애굽기", 1}, {"출애굽", 1}, {"출에굽기", 1},
	{"레위기", 2}, {"레위", 2},
	{"민수기", 3}, {"민수", 3},
	{"신명기", 4}, {"신명", 4},
	{"여호수아", 5}, {"여호수아기", 5},
	{"사사기", 6}, {"사사", 6},
	{"룻기", 7}, {"룻", 7},
	{"사무엘상", 8}, {"삼상", 8}, {"사무엘 상", 8},
	{"사무엘하", 9}, {"삼하", 9}, {"사무엘 하", 9},
	{"열왕기상", 10}, {"왕상", 10}, {"열왕기 상", 10},
	{"열왕기하", 11}, {"왕하", 11}, {"열왕기 하", 11},
	{"역대상", 12}, {"대상", 12}, {"역대 상", 12},
	{"역대하", 13}, {"대하", 13}, {"역대 하", 13},
	{"에스라", 14}, {"에즈라", 14},
	{"느헤미야", 15}, {"느헤미아", 15},
	{"에스더", 16}, {"에스더기", 16},
	{"욥기", 17}, {"욥", 17},
	{"시편", 18}, {"시평", 18}, {"씨편", 18}, {"싯편", 18},
	{"잠언", 19}, {"자면", 19}, {"잠원", 19},
	{"전도서", 20}, {"전도", 20},
	{"아가", 21}, {"아가서", 21},
	{"이사야", 22}, {"이사아", 22}, {"이사야서", 22},
	{"예레미야", 23}, {"예레미아", 23}, {"예레미야서", 23},
	{"예레미야애가", 24}, {"애가", 24},
	{"에스겔", 25}, {"에제키엘", 25},
	{"다니엘", 26}, {"다니엘서", 26},
	{"호세아", 27}, {"호세아서", 27},
	{"요엘", 28}, {"요엘서", 28},
	{"아모스", 29}, {"아모스서", 29},
	{"오바댜", 30}, {"오바디아", 30},
	{"요나", 31}, {"요나서", 31},
	{"미가", 32}, {"미가서", 32},
	{"나훔", 33}, {"나훔서", 33},
	{"하박국", 34}, {"하바국", 34},
	{"스바냐", 35}, {"스바니아", 35},
	{"학개", 36}, {"학게", 36},
	{"스가랴", 37}, {"스가리아", 37},
	{"말라기", 38}, {"말라키", 38},

	// New Testament
	{"마태복음", 39}, {"마태복", 39}, {"마태", 39}, {"마테복음", 39},
	{"마가복음", 40}, {"마가복", 40}, {"마가", 40},
	{"누가복음", 41}, {"누가복", 41}, {"누가", 41},
	{"요한복음", 42}, {"요한복", 42}, {"요한", 42}, {"요한복은", 42},
	{"요한 보금", 42}, {"요한보금", 42}, {"요한 먹은", 42}, {"요한먹은", 42},
	{"요한 버금", 42}, {"요한버금", 42}, {"요안복음", 42},
	{"사도행전", 43}, {"사도행", 43}, {"행전", 43},
	{"로마서", 44}, {"로마", 44}, {"로마써", 44},
	{"고린도전서", 45}, {"고전", 45}, {"고린도 전서", 45},
	{"고린도후서", 46}, {"고후", 46}, {"고린도 후서", 46},
	{"갈라디아서", 47}, {"갈라디아", 47},
	{"에베소서", 48}, {"에베소", 48},
	{"빌립보서", 49}, {"빌립보", 49}, {"필립보서", 49},
	{"골로새서", 50}, {"골로새", 50},
	{"데살로니가전서", 51}, {"데전", 51}, {"데살로니가 전서", 51},
	{"데살로니가후서", 52}, {"데후", 52}, {"데살로니가 후서", 52},
	{"디모데전서", 53}, {"딤전", 53}, {"디모데 전서", 53},
	{"디모데후서", 54}, {"딤후", 54}, {"디모데 후서", 54},
	{"디도서", 55}, {"디도", 55},
	{"빌레몬서", 56}, {"빌레몬", 56},
	{"히브리서", 57}, {"히브리", 57},
	{"야고보서", 58}, {"야고보", 58},
	{"베드로전서", 59}, {"벧전", 59}, {"베드로 전서", 59},
	{"베드로후서", 60}, {"벧후", 60}, {"베드로 후서", 60},
	{"요한일서", 61}, {"요일", 61}, {"요한 일서", 61},
	{"요한이서", 62}, {"요이", 62}, {"요한 이서", 62},
	{"요한삼서", 63}, {"요삼", 63}, {"요한 삼서", 63},
	{"유다서", 64}, {"유다", 64},
	{"요한계시록", 65}, {"계시록", 65}, {"요한 계시록", 65},
}
