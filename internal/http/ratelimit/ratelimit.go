// Package ratelimit provides per-client-IP request limiting with trusted
// reverse-proxy awareness.
package ratelimit

import (
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// maxEntradas bounds the per-IP limiter map.
const maxEntradas = 10000

// IPRateLimiter keeps one token bucket per client IP. Entries idle for twice
// the cleanup interval are dropped by a background goroutine.
type IPRateLimiter struct {
	mu       sync.Mutex
	entradas map[string]*entrada
	taxa     rate.Limit
	burst    int
	limpeza  time.Duration
	proxies  []*net.IPNet
}

type entrada struct {
	limiter *rate.Limiter
	usadoEm time.Time
}

// NewIPRateLimiter builds a limiter allowing r requests per second with the
// given burst. trustedProxies lists CIDRs (or single IPs) of reverse proxies
// whose X-Forwarded-For headers are honored; requests from any other address
// are limited by their RemoteAddr.
func NewIPRateLimiter(r rate.Limit, burst int, limpeza time.Duration, trustedProxies []string) *IPRateLimiter {
	l := &IPRateLimiter{
		entradas: make(map[string]*entrada),
		taxa:     r,
		burst:    burst,
		limpeza:  limpeza,
		proxies:  parseProxies(trustedProxies),
	}
	go l.limparOciosas()
	return l
}

func parseProxies(cidrs []string) []*net.IPNet {
	var redes []*net.IPNet
	for _, cidr := range cidrs {
		if _, ipnet, err := net.ParseCIDR(cidr); err == nil {
			redes = append(redes, ipnet)
			continue
		}
		ip := net.ParseIP(cidr)
		if ip == nil {
			continue
		}
		sufixo := "/128"
		if ip.To4() != nil {
			sufixo = "/32"
		}
		if _, ipnet, err := net.ParseCIDR(cidr + sufixo); err == nil {
			redes = append(redes, ipnet)
		}
	}
	return redes
}

// Middleware rejects requests over the limit with 429.
func (l *IPRateLimiter) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !l.limiterDe(l.clientIP(r)).Allow() {
				http.Error(w, "limite de requisições excedido", http.StatusTooManyRequests)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func (l *IPRateLimiter) limiterDe(ip string) *rate.Limiter {
	l.mu.Lock()
	defer l.mu.Unlock()

	e, ok := l.entradas[ip]
	if !ok {
		if len(l.entradas) >= maxEntradas {
			l.removerMaisAntiga()
		}
		e = &entrada{limiter: rate.NewLimiter(l.taxa, l.burst)}
		l.entradas[ip] = e
	}
	e.usadoEm = time.Now()
	return e.limiter
}

func (l *IPRateLimiter) removerMaisAntiga() {
	var vitima string
	var antiga time.Time
	for ip, e := range l.entradas {
		if vitima == "" || e.usadoEm.Before(antiga) {
			vitima, antiga = ip, e.usadoEm
		}
	}
	delete(l.entradas, vitima)
}

func (l *IPRateLimiter) limparOciosas() {
	ticker := time.NewTicker(l.limpeza)
	defer ticker.Stop()
	for range ticker.C {
		corte := time.Now().Add(-2 * l.limpeza)
		l.mu.Lock()
		for ip, e := range l.entradas {
			if e.usadoEm.Before(corte) {
				delete(l.entradas, ip)
			}
		}
		l.mu.Unlock()
	}
}

// clientIP resolves the client address, only honoring forwarding headers when
// the request arrived through a trusted proxy.
func (l *IPRateLimiter) clientIP(r *http.Request) string {
	remoto := parseAddr(r.RemoteAddr)
	if len(l.proxies) > 0 && !l.confiavel(remoto) {
		return remoto.String()
	}

	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		// Leftmost entry is the original client.
		primeiro := strings.TrimSpace(strings.SplitN(xff, ",", 2)[0])
		if ip := net.ParseIP(primeiro); ip != nil {
			return ip.String()
		}
	}
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		if ip := net.ParseIP(xri); ip != nil {
			return ip.String()
		}
	}
	return remoto.String()
}

func (l *IPRateLimiter) confiavel(ip net.IP) bool {
	for _, rede := range l.proxies {
		if rede.Contains(ip) {
			return true
		}
	}
	return false
}

func parseAddr(addr string) net.IP {
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(addr)
}
