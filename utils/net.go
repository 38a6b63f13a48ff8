package utils

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

const publicIPEndpoint = "https://api.ipify.org"

var httpClient = &http.Client{Timeout: 10 * time.Second}

// ResolveHost returns the first IPv4 address the hostname resolves to. The
// lookup is restricted to IPv4 so the result is comparable with the public
// IP, which the lookup service reports as IPv4.
func ResolveHost(hostname string) (string, error) {
	addrs, err := net.DefaultResolver.LookupIP(context.Background(), "ip4", hostname)
	if err != nil {
		return "", err
	}
	return addrs[0].String(), nil
}

// PublicIP fetches the machine's public address from the lookup service.
func PublicIP() (string, error) {
	resp, err := httpClient.Get(publicIPEndpoint)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("public IP lookup returned %s", resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}
