package config

import (
    "os"
    "strconv"
    "strings"
    "time"
)

// Small env readers shared by the loaders in this package.  Each returns
// the default when the variable is unset or cannot be parsed.

func getenv(k, d string) string {
    if v := os.Getenv(k); v != "" {
        return v
    }
    return d
}

func envBool(k string, d bool) bool {
    switch strings.ToLower(os.Getenv(k)) {
    case "1", "true", "yes", "on":
        return true
    case "0", "false", "no", "off":
        return false
    }
    return d
}

func envInt(k string, d int) int {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if n, err := strconv.Atoi(v); err == nil {
        return n
    }
    return d
}

func envDur(k string, d time.Duration) time.Duration {
    v := os.Getenv(k)
    if v == "" {
        return d
    }
    if dur, err := time.ParseDuration(v); err == nil {
        return dur
    }
    return d
}

// envList splits a comma separated variable, trimming blanks.
func envList(k, d string) []string {
    var out []string
    for _, p := range strings.Split(getenv(k, d), ",") {
        if p = strings.TrimSpace(p); p != "" {
            out = append(out, p)
        }
    }
    return out
}
