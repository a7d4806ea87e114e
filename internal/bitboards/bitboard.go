package bitboards

import (
	"math/bits"
	"strings"

	. "github.com/cricklet/chessboard/internal/helpers"
)

// Bitboard is a set of squares, one bit per square, bit 0 being a1.
type Bitboard uint64

var AllZeros Bitboard = Bitboard(0)

func SingleBitboard(index int) Bitboard {
	return Bitboard(1) << uint(index)
}

func BitboardForFileRank(location FileRank) Bitboard {
	if !location.IsValid() {
		return AllZeros
	}
	return SingleBitboard(IndexFromFileRank(location))
}

func BitboardFromFileRanks(locations ...FileRank) Bitboard {
	b := AllZeros
	for _, location := range locations {
		b |= BitboardForFileRank(location)
	}
	return b
}

// BitboardFromStrings reads eight rows of '0'/'1', rank 8 first.
func BitboardFromStrings(rows [8]string) Bitboard {
	b := Bitboard(0)
	for inverseRank, line := range rows {
		for file, c := range line {
			if c == '1' {
				b |= SingleBitboard(IndexFromFileRank(FileRank{File: File(file), Rank: Rank(7 - inverseRank)}))
			}
		}
	}
	return b
}

func (b Bitboard) Has(location FileRank) bool {
	return location.IsValid() && b&SingleBitboard(IndexFromFileRank(location)) != 0
}

func (b Bitboard) With(location FileRank) Bitboard {
	return b | BitboardForFileRank(location)
}

func (b Bitboard) Without(location FileRank) Bitboard {
	return b &^ BitboardForFileRank(location)
}

func (b Bitboard) IsEmpty() bool {
	return b == 0
}

func (b Bitboard) OnesCount() int {
	return bits.OnesCount64(uint64(b))
}

func (b Bitboard) LeastSignificantOne() Bitboard {
	return b & -b
}

func (b Bitboard) NextIndexOfOne() (int, Bitboard) {
	ls1 := b.LeastSignificantOne()
	index := bits.TrailingZeros64(uint64(ls1))
	return index, b ^ ls1
}

func (b Bitboard) EachIndexOfOneCallback(callback func(int)) {
	temp := b
	for temp != 0 {
		var index int
		index, temp = temp.NextIndexOfOne()
		callback(index)
	}
}

// FileRanks lists the members in index order (a1, b1, ... h8).
func (b Bitboard) FileRanks() []FileRank {
	result := make([]FileRank, 0, b.OnesCount())
	b.EachIndexOfOneCallback(func(index int) {
		result = append(result, FileRankFromIndex(index))
	})
	return result
}

func (b Bitboard) Strings() []string {
	return MapSlice(b.FileRanks(), func(location FileRank) string {
		return location.String()
	})
}

func (b Bitboard) String() string {
	rows := [8]string{}
	for rank := 7; rank >= 0; rank-- {
		row := make([]byte, 8)
		for file := 0; file < 8; file++ {
			if b.Has(FileRank{File: File(file), Rank: Rank(rank)}) {
				row[file] = '1'
			} else {
				row[file] = '0'
			}
		}
		rows[7-rank] = string(row)
	}
	return strings.Join(rows[:], "\n")
}
