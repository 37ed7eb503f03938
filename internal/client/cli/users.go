package cli

import (
	"context"
	"flag"
	"fmt"

	clientapi "github.com/maktab-uz/maktab/internal/client/api"
	"github.com/maktab-uz/maktab/internal/models"
	"github.com/maktab-uz/maktab/pkg/api"
)

// RunUsers печатает список пользователей (только администратор)
func (c *Cli) RunUsers(ctx context.Context, apiClient *clientapi.Client) error {
	token, err := c.authService.Session().Token()
	if err != nil {
		return err
	}

	users, err := apiClient.ListUsers(ctx, token)
	if err != nil {
		return err
	}

	if len(users) == 0 {
		fmt.Println("No users.")
		return nil
	}

	for _, user := range users {
		grade := "-"
		if user.Grade != nil {
			grade = fmt.Sprintf("%d", *user.Grade)
			if user.GradeSection != nil {
				grade += *user.GradeSection
			}
		}
		temp := ""
		if user.IsTemporaryPassword {
			temp = " [temporary password]"
		}
		fmt.Printf("%s  %-16s %-8s %s %s  grade=%s%s\n",
			user.ID, user.Username, user.Role, user.FirstName, user.LastName, grade, temp)
	}

	return nil
}

// RunRegister создает новый аккаунт (только администратор)
func (c *Cli) RunRegister(ctx context.Context, apiClient *clientapi.Client, args []string) error {
	fs := flag.NewFlagSet("register", flag.ContinueOnError)
	username := fs.String("username", "", "Username")
	role := fs.String("role", "", "Role: student | teacher | admin")
	firstName := fs.String("first-name", "", "First name")
	lastName := fs.String("last-name", "", "Last name")
	school := fs.String("school", "", "School name")
	grade := fs.Int("grade", 0, "Grade (students only)")
	gradeSection := fs.String("grade-section", "", "Grade section (students only)")

	if err := fs.Parse(args); err != nil {
		return err
	}

	if *username == "" || *role == "" {
		return fmt.Errorf("usage: maktab register -username <name> -role <role> [flags]")
	}
	if !models.ValidRole(*role) {
		return fmt.Errorf("unknown role %q", *role)
	}

	token, err := c.authService.Session().Token()
	if err != nil {
		return err
	}

	password, err := readPassword("Temporary password for the account: ")
	if err != nil {
		return err
	}

	req := api.RegisterUserRequest{
		Username:  *username,
		Password:  password,
		Role:      *role,
		FirstName: *firstName,
		LastName:  *lastName,
		School:    *school,
	}
	if *grade != 0 {
		req.Grade = grade
	}
	if *gradeSection != "" {
		req.GradeSection = gradeSection
	}

	user, err := apiClient.RegisterUser(ctx, token, req)
	if err != nil {
		return err
	}

	fmt.Printf("Registered %s (%s), id %s. The account must change password on first login.\n",
		user.Username, user.Role, user.ID)
	return nil
}

// RunResetPassword сбрасывает пароль пользователя (только администратор)
func (c *Cli) RunResetPassword(ctx context.Context, apiClient *clientapi.Client, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: maktab reset-password <user-id>")
	}

	token, err := c.authService.Session().Token()
	if err != nil {
		return err
	}

	otp, err := apiClient.ResetPassword(ctx, token, args[0])
	if err != nil {
		return err
	}

	// OTP показывается один раз, сервер хранит только хеш
	fmt.Printf("One-time password: %s\n", otp)
	return nil
}
