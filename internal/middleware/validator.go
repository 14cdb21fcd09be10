package middleware

import (
	"fmt"
	"net"
	"net/url"
	"strconv"
	"strings"
)

// ValidateURL accepts absolute http(s) URLs that do not point at loopback,
// private or link-local hosts. Only used when strict URL checking is on.
func ValidateURL(rawURL string) error {
	if rawURL == "" {
		return fmt.Errorf("URL cannot be empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("invalid URL format: %w", err)
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid URL scheme: %s (allowed: http, https)", u.Scheme)
	}

	host := strings.ToLower(u.Hostname())
	if host == "" {
		return fmt.Errorf("URL has no host")
	}
	if host == "localhost" || strings.HasSuffix(host, ".localhost") {
		return fmt.Errorf("localhost/internal IPs are not allowed")
	}

	if ip := net.ParseIP(host); ip != nil {
		if ip.IsLoopback() || ip.IsUnspecified() {
			return fmt.Errorf("localhost/internal IPs are not allowed")
		}
		if ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() {
			return fmt.Errorf("private IP ranges are not allowed")
		}
	}

	return nil
}

// ParsePage reads page and page_size query values, clamping size to 100.
func ParsePage(pageRaw, sizeRaw string) (int, int) {
	page, _ := strconv.Atoi(pageRaw)
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(sizeRaw)
	return page, ValidateLimit(size)
}

// ValidateLimit validates pagination limit
func ValidateLimit(limit int) int {
	if limit <= 0 {
		return 20 // default
	}
	if limit > 100 {
		return 100 // max limit
	}
	return limit
}
