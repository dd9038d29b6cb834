package utils

import (
	"fmt"
	"net"
	"net/url"
	"strings"

	"github.com/inkframe/inkframe/internal/config"
)

var privateIPRanges = []*net.IPNet{
	// RFC 1918 private IPv4 ranges
	mustParseCIDR("10.0.0.0/8"),
	mustParseCIDR("172.16.0.0/12"),
	mustParseCIDR("192.168.0.0/16"),
	// RFC 3927 link-local
	mustParseCIDR("169.254.0.0/16"),
	// Localhost
	mustParseCIDR("127.0.0.0/8"),
	// IPv6 localhost, link-local, unique local
	mustParseCIDR("::1/128"),
	mustParseCIDR("fe80::/10"),
	mustParseCIDR("fc00::/7"),
}

func mustParseCIDR(cidr string) *net.IPNet {
	_, ipNet, err := net.ParseCIDR(cidr)
	if err != nil {
		panic(fmt.Sprintf("failed to parse CIDR %s: %v", cidr, err))
	}
	return ipNet
}

// URLValidationConfig holds the security policy for target page URLs. A
// renderer pointed at arbitrary user URLs is an SSRF vector without it.
type URLValidationConfig struct {
	BlockPrivateIPs bool
	BlockedDomains  []string
}

// GetURLValidationConfig reads the validation policy from the environment.
func GetURLValidationConfig() URLValidationConfig {
	var blockedDomains []string
	for _, domain := range strings.Split(config.Get("BLOCKED_DOMAINS", ""), ",") {
		domain = strings.TrimSpace(domain)
		if domain != "" {
			blockedDomains = append(blockedDomains, strings.ToLower(domain))
		}
	}

	return URLValidationConfig{
		BlockPrivateIPs: config.GetBool("BLOCK_PRIVATE_IPS", false),
		BlockedDomains:  blockedDomains,
	}
}

// ValidateURL validates a URL against the configured security policy.
func ValidateURL(urlStr string) error {
	return ValidateURLWithConfig(urlStr, GetURLValidationConfig())
}

// ValidateURLWithConfig validates a URL with the provided configuration.
func ValidateURLWithConfig(urlStr string, cfg URLValidationConfig) error {
	parsedURL, err := url.Parse(urlStr)
	if err != nil {
		return fmt.Errorf("invalid URL: %w", err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("unsupported URL scheme: %s (only http and https are allowed)", parsedURL.Scheme)
	}

	hostname := parsedURL.Hostname()
	if hostname == "" {
		return fmt.Errorf("URL missing hostname")
	}

	hostnameLower := strings.ToLower(hostname)
	for _, blockedDomain := range cfg.BlockedDomains {
		if hostnameLower == blockedDomain || strings.HasSuffix(hostnameLower, "."+blockedDomain) {
			return fmt.Errorf("domain %s is blocked", hostname)
		}
	}

	if cfg.BlockPrivateIPs {
		ips, err := net.LookupIP(hostname)
		if err != nil {
			// Unresolvable now just means the browser's own fetch will
			// fail; not a policy violation.
			return nil
		}
		for _, ip := range ips {
			if isPrivateIP(ip) {
				return fmt.Errorf("private IP address %s is blocked for hostname %s", ip.String(), hostname)
			}
		}
	}

	return nil
}

func isPrivateIP(ip net.IP) bool {
	for _, privateRange := range privateIPRanges {
		if privateRange.Contains(ip) {
			return true
		}
	}
	return false
}
