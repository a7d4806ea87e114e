package helpers

type File int
type Rank int

// FileRank addresses one square. Values outside [0,8) are representable so
// callers can ask about them and get ErrOutOfBounds back.
type FileRank struct {
	File File
	Rank Rank
}

// RankFile builds a FileRank from (rank, file) order.
func RankFile(rank int, file int) FileRank {
	return FileRank{File: File(file), Rank: Rank(rank)}
}

type Player uint

const (
	White Player = iota
	Black
)

var _playerStrings = [2]string{
	"white", "black",
}

func (p Player) String() string {
	if p > Black {
		return "?"
	}
	return _playerStrings[p]
}

func (p Player) Other() Player {
	return 1 - p
}

func PlayerFromString(c string) (Player, Error) {
	switch c {
	case "b", "black":
		return Black, NilError
	case "w", "white":
		return White, NilError
	default:
		return White, Errorf("invalid player char %v", c)
	}
}

type PieceType uint

const (
	Rook PieceType = iota
	Knight
	Bishop
	King
	Queen
	Pawn
	InvalidPiece
)

var AllPieceTypes = [6]PieceType{Rook, Knight, Bishop, King, Queen, Pawn}

func (p PieceType) String() string {
	if p > InvalidPiece {
		return "?"
	}
	return [7]string{
		"r", "n", "b", "k", "q", "p", "?",
	}[p]
}

func (p PieceType) Name() string {
	if p > InvalidPiece {
		return "invalid"
	}
	return [7]string{
		"rook", "knight", "bishop", "king", "queen", "pawn", "invalid",
	}[p]
}

func (p PieceType) IsValid() bool {
	return p >= Rook && p <= Pawn
}

func PieceTypeFromString(s string) PieceType {
	switch s {
	case "r":
		return Rook
	case "n":
		return Knight
	case "b":
		return Bishop
	case "k":
		return King
	case "q":
		return Queen
	case "p":
		return Pawn
	default:
		return InvalidPiece
	}
}

// PieceLetter is the FEN letter for a piece: upper case for white.
func PieceLetter(player Player, pieceType PieceType) string {
	s := pieceType.String()
	if player == White {
		return string(s[0] - 'a' + 'A')
	}
	return s
}

// PieceFromRune parses a FEN piece letter.
func PieceFromRune(c rune) (Player, PieceType, Error) {
	player := Black
	lower := c
	if c >= 'A' && c <= 'Z' {
		player = White
		lower = c - 'A' + 'a'
	}
	pieceType := PieceTypeFromString(string(lower))
	if !pieceType.IsValid() {
		return White, InvalidPiece, Errorf("invalid piece %q", c)
	}
	return player, pieceType, NilError
}

var _pieceGlyphs = [2][6]string{
	{"♖", "♘", "♗", "♔", "♕", "♙"},
	{"♜", "♞", "♝", "♚", "♛", "♟"},
}

func PieceUnicode(player Player, pieceType PieceType) string {
	if player > Black || !pieceType.IsValid() {
		return " "
	}
	return _pieceGlyphs[player][pieceType]
}

func (f File) IsValid() bool {
	return f >= 0 && f < 8
}

func (r Rank) IsValid() bool {
	return r >= 0 && r < 8
}

func (f File) String() string {
	if !f.IsValid() {
		return "?"
	}
	return [8]string{
		"a", "b", "c", "d", "e", "f", "g", "h",
	}[f]
}

func (r Rank) String() string {
	if !r.IsValid() {
		return "?"
	}
	return [8]string{
		"1", "2", "3", "4", "5", "6", "7", "8",
	}[r]
}

func RankFromChar(c byte) (Rank, Error) {
	rank := int(c) - '1'
	if rank < 0 || rank >= 8 {
		return 0, Errorf("rank invalid %q", c)
	}
	return Rank(rank), NilError
}

func FileFromChar(c byte) (File, Error) {
	file := int(c) - 'a'
	if file < 0 || file >= 8 {
		return 0, Errorf("file invalid %q", c)
	}
	return File(file), NilError
}

func (v FileRank) IsValid() bool {
	return v.File.IsValid() && v.Rank.IsValid()
}

func (v FileRank) Offset(rankDelta int, fileDelta int) FileRank {
	return FileRank{File: v.File + File(fileDelta), Rank: v.Rank + Rank(rankDelta)}
}

func (v FileRank) String() string {
	return v.File.String() + v.Rank.String()
}

func FileRankFromString(s string) (FileRank, Error) {
	if len(s) != 2 {
		return FileRank{}, Errorf("invalid location %q", s)
	}

	file, fileErr := FileFromChar(s[0])
	rank, rankErr := RankFromChar(s[1])

	if !IsNil(fileErr) || !IsNil(rankErr) {
		return FileRank{}, Join(Errorf("invalid location %q", s), fileErr, rankErr)
	}

	return FileRank{file, rank}, NilError
}

// IndexFromFileRank maps a1 to 0 and h8 to 63. Only valid for in-bounds
// locations.
func IndexFromFileRank(location FileRank) int {
	return int(location.Rank)*8 + int(location.File)
}

func FileRankFromIndex(index int) FileRank {
	f := File(index & 0b111)
	r := Rank(index >> 3)
	return FileRank{f, r}
}

type MoveType int

const (
	QuietMove MoveType = iota
	CaptureMove
)

func (t MoveType) Captures() bool {
	return t == CaptureMove
}

func (t MoveType) String() string {
	switch t {
	case QuietMove:
		return "QuietMove"
	case CaptureMove:
		return "CaptureMove"
	}
	return "Invalid"
}
