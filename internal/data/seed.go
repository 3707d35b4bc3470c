package data

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/kyle-1207/components-plat-sub002/internal/types"
)

// Category taxonomy carried over from the source catalog. Categories are an
// open string set, not a closed enum; these are just the seeded ones.
const (
	CategoryDigitalIC = "数字单片集成电路"
	CategoryAnalogIC  = "模拟单片集成电路"
	CategoryDiscrete  = "半导体分立器件"
)

func ptr(f float64) *float64 { return &f }

// SeedComponents returns the built-in mock catalog: eleven parts across
// three categories, used to bootstrap an empty database and to exercise the
// search surface without an import job.
func SeedComponents() []types.Component {
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	seed := []types.Component{
		{
			PartNumber:            "STM32F103C8T6",
			Manufacturer:          "STMicroelectronics",
			Description:           "Mainstream ARM Cortex-M3 MCU, 64KB flash",
			FunctionalPerformance: "72MHz, 37 GPIO, 2x USART, USB 2.0 FS",
			MainCategory:          CategoryDigitalIC,
			SubCategory:           "微控制器",
			Package:               "LQFP48",
			QualityLevel:          types.QualityIndustrial,
			Lifecycle:             types.LifecycleProducing,
			ReferencePrice:        2.35,
			Parameters: datatypes.JSONMap{
				"coreFrequency": "72 MHz",
				"flashSize":     "64 KB",
				"supplyVoltage": "3.3 V",
				"operatingTemp": "-40..85 C",
			},
		},
		{
			PartNumber:            "STM32F103",
			Manufacturer:          "STMicroelectronics",
			Description:           "STM32F103 performance line family",
			FunctionalPerformance: "ARM Cortex-M3, up to 1MB flash across the line",
			MainCategory:          CategoryDigitalIC,
			SubCategory:           "微控制器",
			Package:               "LQFP64",
			QualityLevel:          types.QualityIndustrial,
			Lifecycle:             types.LifecycleProducing,
			ReferencePrice:        3.10,
			Parameters: datatypes.JSONMap{
				"coreFrequency": "72 MHz",
				"supplyVoltage": "3.3 V",
			},
		},
		{
			PartNumber:            "ESP32-WROOM-32",
			Manufacturer:          "Espressif",
			Description:           "WiFi+BT SoC module",
			FunctionalPerformance: "Dual-core Xtensa LX6, 240MHz, 802.11 b/g/n",
			MainCategory:          CategoryDigitalIC,
			SubCategory:           "无线片上系统",
			Package:               "Module",
			QualityLevel:          types.QualityConsumer,
			Lifecycle:             types.LifecycleProducing,
			ReferencePrice:        3.80,
			Parameters: datatypes.JSONMap{
				"coreFrequency": "240 MHz",
				"supplyVoltage": "3.3 V",
			},
		},
		{
			PartNumber:            "XQR2V3000-4CG717V",
			Manufacturer:          "Xilinx",
			Description:           "Radiation-tolerant Virtex-II FPGA",
			FunctionalPerformance: "3M system gates, QML-V qualified",
			MainCategory:          CategoryDigitalIC,
			SubCategory:           "可编程逻辑器件",
			Package:               "CG717",
			QualityLevel:          types.QualityAerospace,
			Lifecycle:             types.LifecycleProducing,
			ReferencePrice:        0, // no quote available
			TotalDose:             ptr(200),
			Parameters: datatypes.JSONMap{
				"systemGates":   "3M",
				"supplyVoltage": "1.5 V",
				"tidRating":     "200 krad(Si)",
			},
		},
		{
			PartNumber:            "AD590JH",
			Manufacturer:          "Analog Devices",
			Description:           "Two-terminal IC temperature transducer",
			FunctionalPerformance: "1 uA/K current output, -55..150 C",
			MainCategory:          CategoryAnalogIC,
			SubCategory:           "传感器接口电路",
			Package:               "TO-52",
			QualityLevel:          types.QualityMilitary,
			Lifecycle:             types.LifecycleProducing,
			ReferencePrice:        12.40,
			Parameters: datatypes.JSONMap{
				"outputScale":   "1 uA/K",
				"operatingTemp": "-55..150 C",
			},
		},
		{
			PartNumber:            "LM324N",
			Manufacturer:          "Texas Instruments",
			Description:           "Quad general-purpose operational amplifier",
			FunctionalPerformance: "1.2MHz GBW, single supply 3..32V",
			MainCategory:          CategoryAnalogIC,
			SubCategory:           "运算放大器",
			Package:               "PDIP14",
			QualityLevel:          types.QualityIndustrial,
			Lifecycle:             types.LifecycleProducing,
			ReferencePrice:        0.42,
			Parameters: datatypes.JSONMap{
				"gainBandwidth": "1.2 MHz",
				"supplyVoltage": "3..32 V",
			},
		},
		{
			PartNumber:            "OP07AZ/883C",
			Manufacturer:          "Analog Devices",
			Description:           "Ultralow offset precision op amp, MIL-PRF-38535",
			FunctionalPerformance: "25uV max offset, class B screening",
			MainCategory:          CategoryAnalogIC,
			SubCategory:           "运算放大器",
			Package:               "CERDIP8",
			QualityLevel:          types.QualityAerospace,
			Lifecycle:             types.LifecycleProducing,
			ReferencePrice:        86.00,
			TotalDose:             ptr(100),
			Parameters: datatypes.JSONMap{
				"inputOffset": "25 uV",
				"tidRating":   "100 krad(Si)",
			},
		},
		{
			PartNumber:            "2N2222A",
			Manufacturer:          "onsemi",
			Description:           "NPN general-purpose transistor",
			FunctionalPerformance: "40V Vceo, 800mA Ic",
			MainCategory:          CategoryDiscrete,
			SubCategory:           "双极晶体管",
			Package:               "TO-18",
			QualityLevel:          types.QualityIndustrial,
			Lifecycle:             types.LifecycleProducing,
			ReferencePrice:        0.35,
			Parameters: datatypes.JSONMap{
				"vceo": "40 V",
				"ic":   "800 mA",
			},
		},
		{
			PartNumber:            "1N4148",
			Manufacturer:          "Vishay",
			Description:           "Small-signal fast switching diode",
			FunctionalPerformance: "100V Vrrm, 4ns trr",
			MainCategory:          CategoryDiscrete,
			SubCategory:           "开关二极管",
			Package:               "DO-35",
			QualityLevel:          types.QualityConsumer,
			Lifecycle:             types.LifecycleProducing,
			ReferencePrice:        0.03,
			Parameters: datatypes.JSONMap{
				"vrrm": "100 V",
				"trr":  "4 ns",
			},
		},
		{
			PartNumber:            "2N7002",
			Manufacturer:          "Nexperia",
			Description:           "60V N-channel small-signal MOSFET",
			FunctionalPerformance: "60V Vds, 300mA Id",
			MainCategory:          CategoryDiscrete,
			SubCategory:           "场效应晶体管",
			Package:               "SOT-23",
			QualityLevel:          types.QualityIndustrial,
			Lifecycle:             types.LifecycleEngineeringSample,
			ReferencePrice:        0.05,
			Parameters: datatypes.JSONMap{
				"vds": "60 V",
				"id":  "300 mA",
			},
		},
		{
			PartNumber:            "JANTX2N2907A",
			Manufacturer:          "Microchip",
			Description:           "PNP switching transistor, JANTX screened",
			FunctionalPerformance: "60V Vceo, MIL-PRF-19500/291",
			MainCategory:          CategoryDiscrete,
			SubCategory:           "双极晶体管",
			Package:               "TO-18",
			QualityLevel:          types.QualityMilitary,
			Lifecycle:             types.LifecycleDiscontinued,
			ReferencePrice:        0, // no quote available
			TotalDose:             ptr(50),
			Parameters: datatypes.JSONMap{
				"vceo":      "60 V",
				"tidRating": "50 krad(Si)",
			},
		},
	}

	for i := range seed {
		seed[i].ID = uuid.New()
		seed[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
		seed[i].UpdatedAt = seed[i].CreatedAt
	}
	return seed
}
