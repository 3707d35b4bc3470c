package catalog

import (
	"testing"

	"gorm.io/datatypes"

	"github.com/kyle-1207/components-plat-sub002/internal/types"
)

func fptr(f float64) *float64 { return &f }

func mcu(partNumber string, price float64) types.Component {
	return types.Component{
		PartNumber:            partNumber,
		Manufacturer:          "STMicroelectronics",
		Description:           "Mainstream ARM Cortex-M3 MCU",
		FunctionalPerformance: "72MHz, USB 2.0 FS",
		MainCategory:          "数字单片集成电路",
		SubCategory:           "微控制器",
		QualityLevel:          types.QualityIndustrial,
		Lifecycle:             types.LifecycleProducing,
		ReferencePrice:        price,
		Parameters: datatypes.JSONMap{
			"coreFrequency": "72 MHz",
			"supplyVoltage": "3.3 V",
		},
	}
}

func TestMatchesEmptyCriteria(t *testing.T) {
	components := []types.Component{
		{},
		mcu("STM32F103C8T6", 2.35),
		{PartNumber: "XQR2V3000", QualityLevel: types.QualityAerospace, TotalDose: fptr(200)},
	}
	for _, c := range components {
		if !Matches(c, Criteria{}) {
			t.Errorf("empty criteria should match %q", c.PartNumber)
		}
	}
}

func TestMatchesCombinedCriteria(t *testing.T) {
	stm := mcu("STM32F103C8T6", 2.35)
	esp := types.Component{
		PartNumber:     "ESP32-WROOM-32",
		Manufacturer:   "Espressif",
		Description:    "WiFi+BT SoC module",
		MainCategory:   "数字单片集成电路",
		QualityLevel:   types.QualityConsumer,
		Lifecycle:      types.LifecycleProducing,
		ReferencePrice: 3.80,
	}

	cr := Criteria{
		Search:       "stm32",
		Category:     "数字单片集成电路",
		QualityLevel: types.QualityIndustrial,
		PriceRange:   NumericRange{Max: fptr(5)},
	}
	if !Matches(stm, cr) {
		t.Fatalf("STM32F103C8T6 should satisfy the combined criteria")
	}
	if Matches(esp, cr) {
		t.Fatalf("ESP32 must fail the keyword and quality constraints")
	}
}

func TestMatchesSearchFields(t *testing.T) {
	c := mcu("STM32F103C8T6", 2.35)
	cases := []struct {
		name string
		term string
		want bool
	}{
		{"part number, mixed case", "stm32f103", true},
		{"manufacturer", "STMicro", true},
		{"description", "cortex-m3", true},
		{"functional performance", "usb 2.0", true},
		{"main category", "集成电路", true},
		{"sub category", "微控制器", true},
		{"no hit", "fpga", false},
		{"whitespace only matches all", "   ", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(c, Criteria{Search: tc.term}); got != tc.want {
				t.Errorf("Search=%q: got %v, want %v", tc.term, got, tc.want)
			}
		})
	}
}

func TestMatchesPriceSentinel(t *testing.T) {
	noQuote := mcu("XQR2V3000-4CG717V", 0)

	// A zero price means "no quote", so any price constraint must fail,
	// including ranges that contain zero.
	if Matches(noQuote, Criteria{PriceRange: NumericRange{Min: fptr(0), Max: fptr(1000)}}) {
		t.Fatalf("no-quote component must not satisfy a price range containing zero")
	}
	if !Matches(noQuote, Criteria{}) {
		t.Fatalf("no-quote component must still match without a price constraint")
	}
}

func TestMatchesTotalDose(t *testing.T) {
	rad := mcu("OP07AZ/883C", 86)
	rad.TotalDose = fptr(100)
	plain := mcu("LM324N", 0.42)

	cr := Criteria{TotalDoseRange: NumericRange{Min: fptr(50)}}
	if !Matches(rad, cr) {
		t.Errorf("100 krad part should satisfy totalDoseMin=50")
	}
	if Matches(plain, cr) {
		t.Errorf("component without dose data must fail a dose constraint")
	}
}

func TestMatchesParameterRanges(t *testing.T) {
	c := mcu("STM32F103C8T6", 2.35)
	c.Parameters["operatingTemp"] = "-40..85 C"

	cases := []struct {
		name   string
		ranges map[string]NumericRange
		want   bool
	}{
		{"unit suffix parses", map[string]NumericRange{"coreFrequency": {Min: fptr(50), Max: fptr(100)}}, true},
		{"out of range", map[string]NumericRange{"coreFrequency": {Min: fptr(100)}}, false},
		{"missing parameter fails", map[string]NumericRange{"gainBandwidth": {Min: fptr(1)}}, false},
		{"range-style value fails to parse", map[string]NumericRange{"operatingTemp": {Max: fptr(0)}}, false},
		{"empty range is ignored", map[string]NumericRange{"nonsense": {}}, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Matches(c, Criteria{ParameterRanges: tc.ranges}); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestMatchesDoesNotPanicOnZeroValues(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("Matches panicked: %v", r)
		}
	}()
	Matches(types.Component{}, Criteria{
		Search:          "x",
		PriceRange:      NumericRange{Min: fptr(1)},
		TotalDoseRange:  NumericRange{Max: fptr(1)},
		ParameterRanges: map[string]NumericRange{"a": {Min: fptr(1)}},
	})
}
