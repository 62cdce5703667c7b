// Package env loads .env files and reads typed values from the environment.
package env

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Load reads the given file (e.g. ".env") and sets environment variables for each
// line of the form KEY=VALUE. Empty lines and lines starting with # are skipped.
// An optional leading "export " is ignored. Variables already set in the process
// environment are left alone. The file may be missing; that is not an error.
func Load(path string) error {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("env: %w", err)
	}
	defer f.Close()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		key, value, ok := parseLine(scanner.Text())
		if !ok {
			continue
		}
		if _, set := os.LookupEnv(key); set {
			continue
		}
		_ = os.Setenv(key, value)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("env: %w", err)
	}
	return nil
}

func parseLine(line string) (key, value string, ok bool) {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return "", "", false
	}
	line = strings.TrimPrefix(line, "export ")
	i := strings.Index(line, "=")
	if i <= 0 {
		return "", "", false
	}
	key = strings.TrimSpace(line[:i])
	value = strings.TrimSpace(line[i+1:])
	if key == "" {
		return "", "", false
	}
	// Remove surrounding quotes if present
	if len(value) >= 2 && (value[0] == '"' && value[len(value)-1] == '"' || value[0] == '\'' && value[len(value)-1] == '\'') {
		value = value[1 : len(value)-1]
	}
	return key, value, true
}

// String returns the value of key, or "" and false when it is unset or empty.
func String(key string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(key))
	return v, v != ""
}

// Bool parses key with strconv.ParseBool. Unset keys report ok=false.
func Bool(key string) (v bool, ok bool, err error) {
	s, ok := String(key)
	if !ok {
		return false, false, nil
	}
	v, err = strconv.ParseBool(s)
	if err != nil {
		return false, true, fmt.Errorf("env: %s: %w", key, err)
	}
	return v, true, nil
}

// Float parses key as a float32.
func Float(key string) (v float32, ok bool, err error) {
	s, ok := String(key)
	if !ok {
		return 0, false, nil
	}
	f, err := strconv.ParseFloat(s, 32)
	if err != nil {
		return 0, true, fmt.Errorf("env: %s: %w", key, err)
	}
	return float32(f), true, nil
}

// Int parses key as a base-10 int.
func Int(key string) (v int, ok bool, err error) {
	s, ok := String(key)
	if !ok {
		return 0, false, nil
	}
	v, err = strconv.Atoi(s)
	if err != nil {
		return 0, true, fmt.Errorf("env: %s: %w", key, err)
	}
	return v, true, nil
}

// Duration parses key with time.ParseDuration.
func Duration(key string) (v time.Duration, ok bool, err error) {
	s, ok := String(key)
	if !ok {
		return 0, false, nil
	}
	v, err = time.ParseDuration(s)
	if err != nil {
		return 0, true, fmt.Errorf("env: %s: %w", key, err)
	}
	return v, true, nil
}
