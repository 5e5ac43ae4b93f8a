package main

import (
	"io/ioutil"
	"log"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/buger/jsonparser"
	"github.com/pkg/errors"
)

// setting names
const (
	sDataPin     = "dataPin"
	sClockPin    = "clockPin"
	sLatchPin    = "latchPin"
	sCathodePins = "cathodePins"
	sPWMPin      = "pwmPin"
	sPWMClock    = "pwmClock"
	sI2CBus      = "i2cBus"
	sRTCAddr     = "rtcAddr"
	sADCRef      = "adcRefVolts"
	sTimeZone    = "timeZone"
	sSimulated   = "simulated"
	sSimLight    = "simLight"
	sPreview     = "preview"
	sFramePeriod = "framePeriod"
	sDebug       = "debugDump"
	sLogFile     = "logFile"
	sLogMaxSize  = "logMaxSizeMB"
	sLogBackups  = "logMaxBackups"
	sLogMaxAge   = "logMaxAgeDays"
)

// keep settings generic, type-convert on the fly
type configSettings struct {
	settings map[string]interface{}
}

func defaultSettings() configSettings {
	s := make(map[string]interface{})

	// setting the type here makes the conversion "automatic" later
	// BCM pin numbers
	s[sDataPin] = 17
	s[sLatchPin] = 27
	s[sClockPin] = 22
	s[sCathodePins] = []int{5, 6, 13, 19, 26, 21}
	s[sPWMPin] = 18
	s[sPWMClock] = 255000
	s[sI2CBus] = "1"
	s[sRTCAddr] = byte(0x68)
	s[sADCRef] = 3.3
	s[sTimeZone] = ""
	s[sSimulated] = false
	s[sSimLight] = 700
	s[sPreview] = false
	// minimum time per multiplexed frame, 0 runs flat out
	s[sFramePeriod], _ = time.ParseDuration("1ms")
	s[sDebug] = false
	s[sLogFile] = "/var/log/tixclock.log"
	s[sLogMaxSize] = 5
	s[sLogBackups] = 3
	s[sLogMaxAge] = 28

	return configSettings{settings: s}
}

func parseBool(raw []byte, dataType jsonparser.ValueType) (bool, error) {
	if dataType == jsonparser.Boolean {
		return jsonparser.ParseBoolean(raw)
	}
	// try true and false as strings
	switch strings.ToLower(string(raw)) {
	case "true":
		return true, nil
	case "false":
		return false, nil
	}
	return false, errors.Errorf("not a boolean: %s", raw)
}

func parseInt(raw []byte, dataType jsonparser.ValueType) (int64, error) {
	if dataType == jsonparser.String {
		// allow "0x68" style values
		return strconv.ParseInt(string(raw), 0, 64)
	}
	return jsonparser.ParseInt(raw)
}

func (s *configSettings) settingsFromJSON(data []byte) error {
	for k, initVal := range s.settings {
		raw, dataType, _, err := jsonparser.Get(data, k)
		if dataType == jsonparser.NotExist {
			// ignore missing fields
			continue
		}
		if err != nil {
			return errors.Wrapf(err, "setting %s", k)
		}

		switch initVal.(type) {
		case uint8:
			var v int64
			v, err = parseInt(raw, dataType)
			if err == nil {
				if v < 0 || v > 0xFF {
					err = errors.Errorf("%d out of range", v)
				} else {
					s.settings[k] = byte(v)
				}
			}
		case int:
			var v int64
			v, err = parseInt(raw, dataType)
			if err == nil {
				s.settings[k] = int(v)
			}
		case float64:
			var v float64
			v, err = jsonparser.ParseFloat(raw)
			if err == nil {
				s.settings[k] = v
			}
		case bool:
			var v bool
			v, err = parseBool(raw, dataType)
			if err == nil {
				s.settings[k] = v
			}
		case time.Duration:
			var v time.Duration
			v, err = time.ParseDuration(string(raw))
			if err == nil {
				s.settings[k] = v
			}
		case string:
			var v string
			v, err = jsonparser.ParseString(raw)
			if err == nil {
				s.settings[k] = v
			}
		case []int:
			var vals []int
			var itemErr error
			_, err = jsonparser.ArrayEach(raw, func(value []byte, vt jsonparser.ValueType, _ int, e error) {
				if itemErr != nil {
					return
				}
				if e != nil {
					itemErr = e
					return
				}
				v, e := parseInt(value, vt)
				if e != nil {
					itemErr = e
					return
				}
				vals = append(vals, int(v))
			})
			if err == nil {
				err = itemErr
			}
			if err == nil {
				s.settings[k] = vals
			}
		default:
			err = errors.Errorf("bad type: %T", initVal)
		}
		if err != nil {
			return errors.Wrapf(err, "setting %s", k)
		}
	}
	return nil
}

// LoadSettings applies the JSON file at path on top of defaults. A missing
// file leaves the defaults alone.
func LoadSettings(path string, s configSettings) (configSettings, error) {
	data, err := ioutil.ReadFile(path)
	if os.IsNotExist(err) {
		log.Printf("No conf file '%s', using defaults", path)
		return s, nil
	}
	if err != nil {
		return s, errors.Wrapf(err, "read %s", path)
	}

	log.Printf("Reading configuration from '%s'", path)
	if err := s.settingsFromJSON(data); err != nil {
		return s, err
	}
	return s, nil
}

func initSettings(cfgFile string) configSettings {
	log.Println("initSettings")

	s, err := LoadSettings(cfgFile, defaultSettings())
	if err != nil {
		log.Fatal(err.Error())
	}
	return s
}

func (s *configSettings) GetString(key string) string {
	switch v := s.settings[key].(type) {
	case string:
		return v
	default:
		return ""
	}
}

func (s *configSettings) GetBool(key string) bool {
	switch v := s.settings[key].(type) {
	case bool:
		return v
	default:
		return false
	}
}

func (s *configSettings) GetDuration(key string) time.Duration {
	switch v := s.settings[key].(type) {
	case time.Duration:
		return v
	default:
		return -1
	}
}

func (s *configSettings) GetByte(key string) byte {
	switch v := s.settings[key].(type) {
	case byte:
		return v
	case int: // cast to byte
		return byte(v)
	default:
		return 0
	}
}

func (s *configSettings) GetInt(key string) int {
	switch v := s.settings[key].(type) {
	case int:
		return v
	default:
		return 0
	}
}

func (s *configSettings) GetFloat(key string) float64 {
	switch v := s.settings[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 0
	}
}

func (s *configSettings) GetInts(key string) []int {
	switch v := s.settings[key].(type) {
	case []int:
		return v
	default:
		return nil
	}
}

func (s *configSettings) Set(key string, v interface{}) {
	s.settings[key] = v
}

func (s *configSettings) Dump() {
	keys := make([]string, 0, len(s.settings))
	for k := range s.settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v := s.settings[k]
		log.Printf("%s : %T: %v\n", k, v, v)
	}
}
