// Package upd72020x reads and writes the external EEPROM of Renesas
// uPD720201/uPD720202 USB 3.0 host controllers and uploads firmware into
// their download RAM, through vendor registers in PCI configuration space.
//
// # References:
//
//   - [uPD720201]: uPD720201/uPD720202 User's Manual: Hardware (R19UH0078EJ)
//     6.1 PCI Configuration Registers, 5.2 External ROM / FW Download Interface
//   - [sysfs-pci]: Accessing PCI device resources through sysfs (https://www.kernel.org/doc/html/latest/PCI/sysfs-pci.html)
package upd72020x
