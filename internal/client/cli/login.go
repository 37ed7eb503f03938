package cli

import (
	"context"
	"fmt"

	"github.com/maktab-uz/maktab/internal/client/session"
	"github.com/maktab-uz/maktab/internal/models"
)

// RunLogin выполняет вход: спрашивает username, роль и пароль
func (c *Cli) RunLogin(ctx context.Context) error {
	username, err := readLine("Username: ")
	if err != nil {
		return err
	}

	role, err := readLine("Role (student/teacher/admin): ")
	if err != nil {
		return err
	}
	if !models.ValidRole(role) {
		return fmt.Errorf("unknown role %q", role)
	}

	password, err := readPassword("Password: ")
	if err != nil {
		return err
	}

	state, err := c.authService.Login(ctx, username, password, role)
	if err != nil {
		return err
	}

	if state == session.StatePendingPasswordChange {
		fmt.Println("Signed in with a temporary password.")
		fmt.Println("Run 'maktab passwd' to set a permanent password before doing anything else.")
		return nil
	}

	fmt.Println("Signed in.")
	return nil
}

// RunLogout выполняет локальный выход
func (c *Cli) RunLogout(ctx context.Context) error {
	if err := c.authService.Logout(ctx); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

// RunStatus печатает состояние сессии
func (c *Cli) RunStatus(ctx context.Context) error {
	sess := c.authService.Session()

	switch sess.State() {
	case session.StateLoggedOut:
		fmt.Println("Not signed in.")
	case session.StatePendingPasswordChange:
		user, _ := sess.User()
		fmt.Printf("Signed in as %s (%s), password change required.\n", user.Username, user.Role)
	case session.StateActive:
		user, _ := sess.User()
		fmt.Printf("Signed in as %s (%s).\n", user.Username, user.Role)
	}

	fmt.Printf("Language: %s\n", sess.Language())
	return nil
}

// RunPasswd меняет пароль текущего пользователя
func (c *Cli) RunPasswd(ctx context.Context) error {
	current, err := readPassword("Current password: ")
	if err != nil {
		return err
	}

	newPassword, err := readPassword("New password: ")
	if err != nil {
		return err
	}

	confirm, err := readPassword("Confirm new password: ")
	if err != nil {
		return err
	}

	if newPassword != confirm {
		return fmt.Errorf("passwords do not match")
	}

	if err := c.authService.ChangePassword(ctx, current, newPassword); err != nil {
		return err
	}

	fmt.Println("Password changed.")
	return nil
}

// RunLang переключает язык интерфейса
func (c *Cli) RunLang(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: maktab lang <ru|uz>")
	}

	if err := c.authService.SetLanguage(ctx, args[0]); err != nil {
		return err
	}

	fmt.Printf("Language set to %s.\n", args[0])
	return nil
}
