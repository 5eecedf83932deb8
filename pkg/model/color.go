package model

import "strings"

// Color is a select choice color: the choice name plus the host color token
// (e.g. "blueLight2").
type Color struct {
	Name  string
	Token string
}

// host palette, keyed by color token
var palette = map[string]string{
	"blueLight2": "#cfdfff", "blueLight1": "#9cc7ff", "blueBright": "#2d7ff9", "blueDark1": "#2750ae",
	"cyanLight2": "#d0f0fd", "cyanLight1": "#77d1f3", "cyanBright": "#18bfff", "cyanDark1": "#0b76b7",
	"tealLight2": "#c2f5e9", "tealLight1": "#72ddc3", "tealBright": "#20d9d2", "tealDark1": "#06a09b",
	"greenLight2": "#d1f7c4", "greenLight1": "#93e088", "greenBright": "#20c933", "greenDark1": "#338a17",
	"yellowLight2": "#ffeab6", "yellowLight1": "#ffd66e", "yellowBright": "#fcb400", "yellowDark1": "#b87503",
	"orangeLight2": "#fee2d5", "orangeLight1": "#ffa981", "orangeBright": "#ff6f2c", "orangeDark1": "#d74d26",
	"redLight2": "#ffdce5", "redLight1": "#ff9eb7", "redBright": "#f82b60", "redDark1": "#ba1e45",
	"pinkLight2": "#ffdaf6", "pinkLight1": "#f99de2", "pinkBright": "#ff08c2", "pinkDark1": "#b2158b",
	"purpleLight2": "#ede2fe", "purpleLight1": "#cdb0ff", "purpleBright": "#8b46ff", "purpleDark1": "#6b1cb0",
	"grayLight2": "#eeeeee", "grayLight1": "#cccccc", "grayBright": "#666666", "grayDark1": "#444444",
}

// HexForToken maps a host color token to a hex string. Bare family names
// ("blue") use the Light2 shade; literal "#rrggbb" tokens pass through.
func HexForToken(token string) (string, bool) {
	if strings.HasPrefix(token, "#") && (len(token) == 7 || len(token) == 4) {
		return token, true
	}
	if hex, ok := palette[token]; ok {
		return hex, true
	}
	if hex, ok := palette[token+"Light2"]; ok {
		return hex, true
	}
	return "", false
}

// Hex returns the color's hex value, or "" for unknown tokens
func (c Color) Hex() string {
	hex, _ := HexForToken(c.Token)
	return hex
}
