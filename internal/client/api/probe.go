package api

import "os"

// Platform представляет тип среды, в которой запущен клиент
type Platform string

const (
	// PlatformWeb — клиент работает внутри браузера
	PlatformWeb Platform = "web"
	// PlatformAndroid — клиент работает на Android (эмулятор или устройство)
	PlatformAndroid Platform = "android"
	// PlatformNative — любая другая нативная среда (десктоп, iOS)
	PlatformNative Platform = "native"
)

// EnvironmentProbe абстрагирует чтение сигналов среды выполнения.
// Резолвер получает probe снаружи, а не читает глобальные переменные сам —
// это позволяет детерминированно тестировать все комбинации платформ.
type EnvironmentProbe interface {
	// Platform возвращает тип среды выполнения
	Platform() Platform

	// ConfiguredURL возвращает явно заданный URL бэкенда или пустую строку.
	// Если URL задан, все остальные сигналы среды игнорируются.
	ConfiguredURL() string

	// WebOrigin возвращает origin страницы в web-среде или пустую строку
	WebOrigin() string

	// DevHost возвращает хост машины разработчика (для физического
	// устройства в одной сети с dev-сервером) или пустую строку
	DevHost() string
}

// EnvProbe читает сигналы среды из переменных окружения
type EnvProbe struct{}

// Compile-time check that EnvProbe implements EnvironmentProbe
var _ EnvironmentProbe = EnvProbe{}

// Platform возвращает платформу из MAKTAB_PLATFORM (по умолчанию native)
func (EnvProbe) Platform() Platform {
	switch os.Getenv("MAKTAB_PLATFORM") {
	case "web":
		return PlatformWeb
	case "android":
		return PlatformAndroid
	}
	return PlatformNative
}

// ConfiguredURL возвращает значение MAKTAB_API_URL
func (EnvProbe) ConfiguredURL() string {
	return os.Getenv("MAKTAB_API_URL")
}

// WebOrigin возвращает значение MAKTAB_WEB_ORIGIN
func (EnvProbe) WebOrigin() string {
	return os.Getenv("MAKTAB_WEB_ORIGIN")
}

// DevHost возвращает значение MAKTAB_DEV_HOST
func (EnvProbe) DevHost() string {
	return os.Getenv("MAKTAB_DEV_HOST")
}
