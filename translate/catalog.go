package translate

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// _languages are the message languages, the default first.
var _languages = []language.Tag{
	language.AmericanEnglish,
	language.German,
}

// _german maps the en-US message keys to German.
var _german = map[string]string{
	"$(%v) is not a valid expression":   "$(%v) ist kein gültiger Ausdruck",
	"%v: %v":                            "%v: %v",
	"'%v' is not a number":              "'%v' ist keine Zahl",
	".equ duplicated":                   ".equ doppelt definiert",
	".equ syntax":                       ".equ Syntaxfehler",
	"address 0x%04x %v":                 "Adresse 0x%04x %v",
	"address out of range":              "Adresse außerhalb des Bereichs",
	"data space missing":                "Datenspeicher fehlt",
	"divide by zero":                    "Division durch Null",
	"excessive arguments":               "zu viele Argumente",
	"immediate out of range":            "Direktwert außerhalb des Bereichs",
	"instruction invalid":               "ungültiger Befehl",
	"label %v missing":                  "Marke %v fehlt",
	"label duplicated":                  "Marke doppelt definiert",
	"line %d '%v' %v":                   "Zeile %d '%v' %v",
	"opcode unknown":                    "unbekannter Opcode",
	"operation unknown":                 "unbekannte Operation",
	"pc %#04x (of %d instructions): %v": "pc %#04x (von %d Befehlen): %v",
	"pc %#04x line %d %v":               "pc %#04x Zeile %d %v",
	"pointer change unknown":            "unbekannte Zeigeränderung",
	"program counter out of range":      "Programmzähler außerhalb des Bereichs",
	"program exceeds flash size":        "Programm größer als der Flash",
	"program missing":                   "Programm fehlt",
	"register invalid":                  "ungültiges Register",
	"register kind unknown":             "unbekannte Registerart",
	"register out of range":             "Register außerhalb des Bereichs",
	"start address after end address":   "Startadresse nach Endadresse",
	"timer prescaler zero":              "Timer-Vorteiler ist null",
	"value missing":                     "Wert fehlt",
}

// register adds the message catalog to the default catalog.
func register() {
	for key, text := range _german {
		_ = message.SetString(language.German, key, text)
		_ = message.SetString(language.AmericanEnglish, key, key)
	}
}
