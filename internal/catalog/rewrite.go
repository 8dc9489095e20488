package catalog

import "strings"

// alternateBoardIDs returns the board identifiers to retry, in order,
// when an exact lookup for boardID misses. The table mirrors the
// alternate-name rewrites mpflash's downloaded-firmware lookup has
// always applied, since board vendors are inconsistent about prefixing
// their board ids with the port name.
func alternateBoardIDs(boardID, port string) []string {
	var alts []string

	switch {
	case boardID == "PICO":
		alts = append(alts, "RPI_PICO")
	case strings.HasPrefix(boardID, "RPI_"):
		alts = append(alts, strings.TrimPrefix(boardID, "RPI_"))
	case boardID == "GENERIC":
		if port != "" {
			alts = append(alts, strings.ToUpper(port)+"_GENERIC")
		}
	case strings.HasPrefix(boardID, "ESP32_"):
		alts = append(alts, strings.TrimPrefix(boardID, "ESP32_"))
	case strings.HasPrefix(boardID, "ESP8266_"):
		alts = append(alts, strings.TrimPrefix(boardID, "ESP8266_"))
	}

	return alts
}
