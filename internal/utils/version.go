package utils

import (
    "strconv"
    "strings"
)

// CompareVersions compares two dotted version strings (e.g. "1.2.3").
// Returns 1 if current > target, 0 if equal, -1 if current < target.
// Missing segments count as zero; non-numeric tails are ignored.
func CompareVersions(current, target string) int {
    cur := splitVersion(current)
    tgt := splitVersion(target)
    n := len(cur)
    if len(tgt) > n {
        n = len(tgt)
    }
    for i := 0; i < n; i++ {
        var cv, tv int
        if i < len(cur) {
            cv = cur[i]
        }
        if i < len(tgt) {
            tv = tgt[i]
        }
        if cv != tv {
            if cv > tv {
                return 1
            }
            return -1
        }
    }
    return 0
}

func splitVersion(v string) []int {
    v = strings.TrimSpace(v)
    if v == "" {
        return []int{0}
    }
    parts := strings.Split(v, ".")
    out := make([]int, 0, len(parts))
    for _, p := range parts {
        out = append(out, leadingInt(strings.TrimSpace(p)))
    }
    return out
}

// leadingInt parses the leading run of digits in s, so "2rc1" counts as 2.
func leadingInt(s string) int {
    i := 0
    for i < len(s) && s[i] >= '0' && s[i] <= '9' {
        i++
    }
    n, _ := strconv.Atoi(s[:i])
    return n
}
