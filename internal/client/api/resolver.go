package api

import (
	"fmt"
	"strings"
)

// Порты, на которых может слушать бэкенд: основной API порт
// и унаследованный порт старых установок.
const (
	primaryPort = 8083
	legacyPort  = 5001
)

// Адрес, через который Android-эмулятор видит хост-машину
const androidEmulatorHost = "10.0.2.2"

// ResolveBaseURLs строит упорядоченный список кандидатов base URL
// для данной среды выполнения. Порядок значим: диспетчер пробует
// кандидатов строго по списку. Явно сконфигурированный URL делает
// список одноэлементным, все остальные сигналы среды игнорируются.
func ResolveBaseURLs(probe EnvironmentProbe) []string {
	if configured := probe.ConfiguredURL(); configured != "" {
		return []string{strings.TrimRight(configured, "/")}
	}

	devHost := probe.DevHost()
	devPrimary, devLegacy := hostPair(devHost)
	emulatorPrimary, emulatorLegacy := hostPair(androidEmulatorHost)
	localhostPrimary, localhostLegacy := hostPair("localhost")
	loopbackPrimary, loopbackLegacy := hostPair("127.0.0.1")

	switch probe.Platform() {
	case PlatformWeb:
		return unique(
			probe.WebOrigin(),
			localhostPrimary, localhostLegacy,
			loopbackPrimary, loopbackLegacy,
			devPrimary, devLegacy,
		)
	case PlatformAndroid:
		return unique(
			devPrimary, devLegacy,
			emulatorPrimary, emulatorLegacy,
			localhostPrimary, localhostLegacy,
		)
	default:
		return unique(
			devPrimary, devLegacy,
			localhostPrimary, localhostLegacy,
		)
	}
}

// hostPair возвращает URL хоста на основном и унаследованном портах.
// Для пустого хоста возвращает пустые строки, unique их отбросит.
func hostPair(host string) (string, string) {
	if host == "" {
		return "", ""
	}
	return fmt.Sprintf("http://%s:%d", host, primaryPort),
		fmt.Sprintf("http://%s:%d", host, legacyPort)
}

// unique отбрасывает пустые значения и дубликаты, сохраняя порядок
func unique(values ...string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))

	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}

	return result
}
