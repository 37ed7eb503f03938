package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeProbe — детерминированная среда выполнения для тестов
type fakeProbe struct {
	platform   Platform
	configured string
	webOrigin  string
	devHost    string
}

func (p fakeProbe) Platform() Platform    { return p.platform }
func (p fakeProbe) ConfiguredURL() string { return p.configured }
func (p fakeProbe) WebOrigin() string     { return p.webOrigin }
func (p fakeProbe) DevHost() string       { return p.devHost }

func TestResolveBaseURLs_ConfiguredURLShortCircuits(t *testing.T) {
	probe := fakeProbe{
		platform:   PlatformWeb,
		configured: "https://api.example.uz",
		webOrigin:  "https://school.example.uz",
		devHost:    "192.168.1.10",
	}

	urls := ResolveBaseURLs(probe)

	// Явный URL — единственный кандидат, сигналы среды игнорируются
	assert.Equal(t, []string{"https://api.example.uz"}, urls)
}

func TestResolveBaseURLs_ConfiguredURLTrailingSlashStripped(t *testing.T) {
	probe := fakeProbe{platform: PlatformNative, configured: "https://api.example.uz/"}

	urls := ResolveBaseURLs(probe)

	require.Len(t, urls, 1)
	assert.Equal(t, "https://api.example.uz", urls[0])
}

func TestResolveBaseURLs_Web(t *testing.T) {
	probe := fakeProbe{
		platform:  PlatformWeb,
		webOrigin: "https://school.example.uz",
		devHost:   "192.168.1.10",
	}

	urls := ResolveBaseURLs(probe)

	assert.Equal(t, []string{
		"https://school.example.uz",
		"http://localhost:8083",
		"http://localhost:5001",
		"http://127.0.0.1:8083",
		"http://127.0.0.1:5001",
		"http://192.168.1.10:8083",
		"http://192.168.1.10:5001",
	}, urls)
}

func TestResolveBaseURLs_WebWithoutOriginAndDevHost(t *testing.T) {
	probe := fakeProbe{platform: PlatformWeb}

	urls := ResolveBaseURLs(probe)

	assert.Equal(t, []string{
		"http://localhost:8083",
		"http://localhost:5001",
		"http://127.0.0.1:8083",
		"http://127.0.0.1:5001",
	}, urls)
}

func TestResolveBaseURLs_Android(t *testing.T) {
	probe := fakeProbe{platform: PlatformAndroid, devHost: "192.168.1.10"}

	urls := ResolveBaseURLs(probe)

	// Физическое устройство сначала пробует машину разработчика,
	// затем alias эмулятора, затем loopback
	assert.Equal(t, []string{
		"http://192.168.1.10:8083",
		"http://192.168.1.10:5001",
		"http://10.0.2.2:8083",
		"http://10.0.2.2:5001",
		"http://localhost:8083",
		"http://localhost:5001",
	}, urls)
}

func TestResolveBaseURLs_AndroidWithoutDevHost(t *testing.T) {
	probe := fakeProbe{platform: PlatformAndroid}

	urls := ResolveBaseURLs(probe)

	// Без dev-хоста список не пустой: остаются статические кандидаты
	assert.Equal(t, []string{
		"http://10.0.2.2:8083",
		"http://10.0.2.2:5001",
		"http://localhost:8083",
		"http://localhost:5001",
	}, urls)
}

func TestResolveBaseURLs_Native(t *testing.T) {
	probe := fakeProbe{platform: PlatformNative, devHost: "192.168.1.10"}

	urls := ResolveBaseURLs(probe)

	assert.Equal(t, []string{
		"http://192.168.1.10:8083",
		"http://192.168.1.10:5001",
		"http://localhost:8083",
		"http://localhost:5001",
	}, urls)
}

func TestResolveBaseURLs_NeverReturnsDuplicates(t *testing.T) {
	probes := []fakeProbe{
		{platform: PlatformWeb, webOrigin: "http://localhost:8083", devHost: "localhost"},
		{platform: PlatformAndroid, devHost: "10.0.2.2"},
		{platform: PlatformNative, devHost: "localhost"},
		{platform: PlatformWeb},
		{platform: PlatformAndroid},
		{platform: PlatformNative},
	}

	for _, probe := range probes {
		urls := ResolveBaseURLs(probe)
		seen := make(map[string]bool)
		for _, url := range urls {
			assert.False(t, seen[url], "duplicate candidate %q for probe %+v", url, probe)
			seen[url] = true
		}
	}
}

func TestResolveBaseURLs_DevHostOverlapDeduplicated(t *testing.T) {
	// dev-хост совпадает с loopback: кандидаты не должны повторяться
	probe := fakeProbe{platform: PlatformNative, devHost: "localhost"}

	urls := ResolveBaseURLs(probe)

	assert.Equal(t, []string{
		"http://localhost:8083",
		"http://localhost:5001",
	}, urls)
}
