package main

import (
	"fmt"

	"github.com/google/gousb"
)

// Android devices already switched into accessory mode enumerate under
// Google's AOA vendor ID with one of a handful of product IDs, per
// <https://source.android.com/devices/accessories/aoa>.
const googleVendorID = 0x18d1

var googleAccessoryProductIDs = map[gousb.ID]bool{
	0x2d00: true, // accessory
	0x2d01: true, // accessory + adb
	0x2d04: true, // audio + accessory
	0x2d05: true, // audio + accessory + adb
}

// openAOADevice finds the (single) USB device already in AOA accessory
// mode and opens it, grounded on
// _examples/HopIT-Hub-R1-Control/aoa/aoa.go's Open: gousb.NewContext,
// OpenDevices with a vendor/product filter, then matching the requested
// serial (or taking the only match when serial is empty).
func openAOADevice(serial string) (*gousb.Context, *gousb.Device, error) {
	ctx := gousb.NewContext()

	devs, err := ctx.OpenDevices(func(desc *gousb.DeviceDesc) bool {
		return desc.Vendor == gousb.ID(googleVendorID) && googleAccessoryProductIDs[desc.Product]
	})
	if err != nil && len(devs) == 0 {
		ctx.Close()
		return nil, nil, fmt.Errorf("usb: no AOA accessory device found: %w", err)
	}

	var chosen *gousb.Device
	for _, d := range devs {
		s, _ := d.SerialNumber()
		if chosen == nil && (serial == "" || s == serial) {
			chosen = d
			continue
		}
		d.Close()
	}
	if chosen == nil {
		ctx.Close()
		return nil, nil, fmt.Errorf("usb: no AOA accessory device matches serial %q", serial)
	}

	chosen.SetAutoDetach(true)
	return ctx, chosen, nil
}
