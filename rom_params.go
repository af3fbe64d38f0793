package upd72020x

// ROMParams describes an EEPROM the controller can drive.
type ROMParams struct {
	Name string
	// Config is written to ROM_CONFIG before the EEPROM is accessed.
	// [uPD720201|6.1.27 External ROM Configuration Register]
	Config uint32
}

// Timing values shared by several vendors.
const (
	romConfigMX25L    = 0x700
	romConfigMX25Lx21 = 0x500
	romConfigM25P05   = 0x750
	romConfigM25P20   = 0x760
	romConfigSST25VF  = 0x10791
)

// knownROMs is keyed by the ROM_INFO register: JEDEC manufacturer ID in bits
// 16..23 and device ID in bits 0..15.
var knownROMs = map[uint32]ROMParams{
	0x00C22010: {"Macronix MX25L512E", romConfigMX25L},
	0x00C22011: {"Macronix MX25L1006E", romConfigMX25L},
	0x00C22012: {"Macronix MX25L2006E", romConfigMX25L},
	0x00C22013: {"Macronix MX25L4006E", romConfigMX25L},
	0x00C22210: {"Macronix MX25L5121E", romConfigMX25Lx21},
	0x00C22211: {"Macronix MX25L1021E", romConfigMX25Lx21},

	0x00EF3011: {"Winbond W25X10BV", romConfigMX25L},
	0x00EF3012: {"Winbond W25X20BV", romConfigMX25L},
	0x00EF3013: {"Winbond W25X40BV", romConfigMX25L},

	0x00202010: {"Micron M25P05-A", romConfigM25P05},
	0x00202011: {"Micron M25P10-A", romConfigM25P05},
	0x00202012: {"Micron M25P20", romConfigM25P20},
	0x00202013: {"Micron M25P40", romConfigM25P20},

	// Not listed by the datasheet; works with the MX25L timing.
	0x005E2013: {"Zbit T25S40", romConfigMX25L},

	0x019D20FF: {"PMC Pm25LD512C", romConfigMX25L},
	0x019D207F: {"PMC Pm25LD512C2", romConfigMX25L},
	0x001F6500: {"Atmel AT25F512B", romConfigMX25L},
	0x001C3110: {"EON EN25F05", romConfigMX25L},
	0x001C3111: {"EON EN25F10", romConfigMX25L},
	0x001C3112: {"EON EN25F20", romConfigMX25L},
	0x001C3113: {"EON EN25F40", romConfigMX25L},
	0x00373010: {"AMIC A25L512", romConfigMX25L},
	0x00373011: {"AMIC A25L010", romConfigMX25L},
	0x00373012: {"AMIC A25L020", romConfigMX25L},
	0x00373013: {"AMIC A25L040", romConfigMX25L},

	0x00BF0048: {"SST SST25VF512A", romConfigSST25VF},
	0x00BF0049: {"SST SST25VF010A", romConfigSST25VF},
}

// LookupROMParams returns the parameters for a ROM_INFO value.
func LookupROMParams(info uint32) (ROMParams, bool) {
	p, ok := knownROMs[info]
	return p, ok
}
