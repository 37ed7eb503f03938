package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"syscall"

	"golang.org/x/term"

	"github.com/maktab-uz/maktab/internal/client/auth"
)

// Cli связывает команды с сервисом авторизации
type Cli struct {
	authService *auth.Service
}

// New создает CLI поверх сервиса авторизации
func New(authService *auth.Service) *Cli {
	return &Cli{authService: authService}
}

// PrintUsage выводит справку по командам
func PrintUsage() {
	fmt.Println(`Usage: maktab <command> [arguments]

Commands:
  login           Sign in (username, role, password prompt)
  logout          Sign out locally
  status          Show current session state
  passwd          Change password
  lang <ru|uz>    Switch interface language
  seed-admin      Bootstrap the first admin account
  users           List users (admin)
  register        Register a new account (admin)
  reset-password  Reset a user's password, prints one-time password (admin)
  classes         Manage classes: list | add | delete (admin)
  subjects        Manage subjects: list | add | update | delete (admin)`)
}

// readLine читает строку из stdin с приглашением
func readLine(prompt string) (string, error) {
	fmt.Print(prompt)
	reader := bufio.NewReader(os.Stdin)
	line, err := reader.ReadString('\n')
	if err != nil {
		return "", fmt.Errorf("failed to read input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// readPassword читает пароль без эха
func readPassword(prompt string) (string, error) {
	fmt.Print(prompt)
	password, err := term.ReadPassword(int(syscall.Stdin))
	fmt.Println()
	if err != nil {
		return "", fmt.Errorf("failed to read password: %w", err)
	}
	return string(password), nil
}
