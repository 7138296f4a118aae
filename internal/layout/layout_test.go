package layout

import (
	"errors"
	"reflect"
	"testing"
)

func TestGenerateGenericCoversAllSeats(t *testing.T) {
	for total := 3; total <= 100; total++ {
		chart, err := Generate(total, VanModelGeneric)
		if err != nil {
			t.Fatalf("Generate(%d) error: %v", total, err)
		}

		seen := make(map[int]bool)
		for _, seat := range chart.Seats() {
			if seen[seat] {
				t.Fatalf("Generate(%d): duplicate seat %d", total, seat)
			}
			seen[seat] = true
		}

		if len(seen) != total-1 {
			t.Fatalf("Generate(%d): got %d passenger seats, want %d", total, len(seen), total-1)
		}
		for seat := 2; seat <= total; seat++ {
			if !seen[seat] {
				t.Fatalf("Generate(%d): missing seat %d", total, seat)
			}
		}
	}
}

func TestGenerateGenericFrontRow(t *testing.T) {
	chart, err := Generate(15, VanModelGeneric)
	if err != nil {
		t.Fatalf("Generate(15) error: %v", err)
	}
	if !reflect.DeepEqual(chart[0], []int{1, 2, 3}) {
		t.Errorf("front row = %v, want [1 2 3]", chart[0])
	}
}

func TestGenerateGenericPartialTailRow(t *testing.T) {
	chart, err := Generate(13, VanModelGeneric)
	if err != nil {
		t.Fatalf("Generate(13) error: %v", err)
	}
	// 13 seats: [1 2 3], [4..7], [8..11], [12 13]
	want := Layout{
		{1, 2, 3},
		{4, 5, 6, 7},
		{8, 9, 10, 11},
		{12, 13},
	}
	if !reflect.DeepEqual(chart, want) {
		t.Errorf("Generate(13) = %v, want %v", chart, want)
	}
}

func TestGenerateSprinter20(t *testing.T) {
	chart, err := Generate(20, VanModelSprinter20)
	if err != nil {
		t.Fatalf("Generate(20, Sprinter) error: %v", err)
	}
	want := Layout{
		{1, Empty, 2, 3},
		{4, 5, 6, 7},
		{8, 9, Empty, 10},
		{11, 12, Empty, 13},
		{14, 15, Empty, 16},
		{17, 18, 19, 20},
	}
	if !reflect.DeepEqual(chart, want) {
		t.Errorf("Sprinter layout = %v, want %v", chart, want)
	}
}

func TestGenerateCrafter22(t *testing.T) {
	chart, err := Generate(22, VanModelCrafter22)
	if err != nil {
		t.Fatalf("Generate(22, Crafter) error: %v", err)
	}
	want := Layout{
		{1, Empty, 2, 3},
		{4, 5, 6, 7},
		{8, 9, 10, Empty},
		{11, 12, 13, 14},
		{15, 16, 17, 18},
		{19, 20, 21, 22},
	}
	if !reflect.DeepEqual(chart, want) {
		t.Errorf("Crafter layout = %v, want %v", chart, want)
	}
}

func TestGenerateFixedModelRejectsWrongSeatCount(t *testing.T) {
	if _, err := Generate(18, VanModelSprinter20); !errors.Is(err, ErrInvalidConfiguration) {
		t.Errorf("Generate(18, Sprinter) error = %v, want ErrInvalidConfiguration", err)
	}
}

func TestGenerateRejectsTooFewSeats(t *testing.T) {
	for _, total := range []int{-1, 0, 1, 2} {
		if _, err := Generate(total, VanModelGeneric); !errors.Is(err, ErrInvalidConfiguration) {
			t.Errorf("Generate(%d) error = %v, want ErrInvalidConfiguration", total, err)
		}
	}
}

func TestLayoutContains(t *testing.T) {
	chart, err := Generate(10, VanModelGeneric)
	if err != nil {
		t.Fatalf("Generate(10) error: %v", err)
	}

	if chart.Contains(DriverSeat) {
		t.Error("Contains(1) = true, driver seat must not count as a passenger seat")
	}
	if chart.Contains(Empty) {
		t.Error("Contains(0) = true, empty slot must not count as a seat")
	}
	if !chart.Contains(10) {
		t.Error("Contains(10) = false, want true")
	}
	if chart.Contains(11) {
		t.Error("Contains(11) = true, want false")
	}
}

func TestLayoutTotalSeats(t *testing.T) {
	chart, err := Generate(22, VanModelCrafter22)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if got := chart.TotalSeats(); got != 22 {
		t.Errorf("TotalSeats() = %d, want 22", got)
	}
}

func TestGenerateReturnsFreshCopyOfFixedLayout(t *testing.T) {
	first, _ := Generate(20, VanModelSprinter20)
	first[0][0] = 99

	second, _ := Generate(20, VanModelSprinter20)
	if second[0][0] != 1 {
		t.Error("mutating a returned fixed layout leaked into subsequent calls")
	}
}
