package torctl

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// NetworkStatus is this relay's entry in the network consensus.
type NetworkStatus struct {
	Flags     []string
	Bandwidth int64 // consensus weight as published (KB/s units)
	Published time.Time
}

// NetworkStatus fetches and parses the consensus entry for a fingerprint.
func (c *Client) NetworkStatus(fingerprint string) (*NetworkStatus, error) {
	if fingerprint == "" {
		return nil, errors.New("relay fingerprint unknown")
	}
	kvs, err := c.conn.GetInfo("ns/id/" + fingerprint)
	if err != nil {
		return nil, err
	}
	if len(kvs) == 0 {
		return nil, fmt.Errorf("no consensus entry for %s", fingerprint)
	}
	return parseNetworkStatus(kvs[0].Val)
}

// parseNetworkStatus extracts the r/s/w lines of a router status entry.
// Entry format per dir-spec:
//
//	r <nickname> <identity> <digest> <date> <time> <ip> <orport> <dirport>
//	s <flag> <flag> ...
//	w Bandwidth=<n>
func parseNetworkStatus(doc string) (*NetworkStatus, error) {
	ns := &NetworkStatus{Flags: []string{}}
	seenR := false
	for _, line := range strings.Split(doc, "\n") {
		line = strings.TrimSpace(line)
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		switch fields[0] {
		case "r":
			if len(fields) < 6 {
				return nil, fmt.Errorf("malformed r line: %q", line)
			}
			published, err := time.Parse("2006-01-02 15:04:05", fields[4]+" "+fields[5])
			if err != nil {
				return nil, fmt.Errorf("malformed publication time: %w", err)
			}
			ns.Published = published
			seenR = true
		case "s":
			ns.Flags = append(ns.Flags, fields[1:]...)
		case "w":
			for _, f := range fields[1:] {
				if v, ok := strings.CutPrefix(f, "Bandwidth="); ok {
					bw, err := strconv.ParseInt(v, 10, 64)
					if err != nil {
						return nil, fmt.Errorf("malformed bandwidth: %w", err)
					}
					ns.Bandwidth = bw
				}
			}
		}
	}
	if !seenR {
		return nil, errors.New("consensus entry has no r line")
	}
	return ns, nil
}
