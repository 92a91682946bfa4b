package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"yatube/internal/bootstrap"
	gormpersistence "yatube/internal/infra/persistence/gorm"
	"yatube/internal/service"
)

// cliEnv 是管理命令共享的依赖
type cliEnv struct {
	db     *gorm.DB
	redis  *redis.Client
	groups *service.GroupService
	feeds  *service.FeedService
	log    *logrus.Logger
}

func (e *cliEnv) Close() {
	if e.redis != nil {
		_ = e.redis.Close()
	}
	if e.db != nil {
		if sqlDB, err := e.db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	}
}

// envOpener 按需打开依赖。needRedis 为 false 时不连接 Redis。
type envOpener func(migrate, needRedis bool) (*cliEnv, error)

func openEnv(migrate, needRedis bool) (*cliEnv, error) {
	cfg, err := bootstrap.LoadConfig()
	if err != nil {
		return nil, err
	}
	env := &cliEnv{log: bootstrap.NewLogger(cfg)}

	if env.db, err = bootstrap.OpenDB(cfg, migrate); err != nil {
		return nil, err
	}
	groupRepo := gormpersistence.NewGormGroupRepository(env.db)
	env.groups = service.NewGroupService(groupRepo)

	if needRedis {
		if env.redis, err = bootstrap.OpenRedis(cfg); err != nil {
			env.Close()
			return nil, err
		}
		env.feeds = service.NewFeedService(
			gormpersistence.NewGormPostRepository(env.db),
			groupRepo,
			gormpersistence.NewGormUserRepository(env.db),
			gormpersistence.NewGormFollowRepository(env.db),
			bootstrap.NewFeedCache(cfg, env.redis),
		)
	}
	return env, nil
}

func newRootCmd(open envOpener) *cobra.Command {
	root := &cobra.Command{
		Use:           "yatubectl",
		Short:         "Administrative commands for the yatube server",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(newMigrateCmd(open), newGroupCmd(open), newCacheCmd(open))
	return root
}

func newMigrateCmd(open envOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := open(true, false)
			if err != nil {
				return err
			}
			defer env.Close()
			env.log.Info("Database migrated")
			fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return nil
		},
	}
}

func newGroupCmd(open envOpener) *cobra.Command {
	group := &cobra.Command{
		Use:   "group",
		Short: "Manage community groups",
	}

	var title, slug, description string
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a group",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := open(false, false)
			if err != nil {
				return err
			}
			defer env.Close()
			g, err := env.groups.CreateGroup(cmdContext(cmd), title, slug, description)
			if err != nil {
				return fmt.Errorf("create group %q: %w", slug, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created group %d (%s)\n", g.ID, g.Slug)
			return nil
		},
	}
	create.Flags().StringVar(&title, "title", "", "group title (1-200 characters)")
	create.Flags().StringVar(&slug, "slug", "", "unique URL slug")
	create.Flags().StringVar(&description, "description", "", "group description")
	_ = create.MarkFlagRequired("title")
	_ = create.MarkFlagRequired("slug")

	list := &cobra.Command{
		Use:   "list",
		Short: "List all groups",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := open(false, false)
			if err != nil {
				return err
			}
			defer env.Close()
			groups, err := env.groups.ListGroups(cmdContext(cmd))
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tSLUG\tTITLE")
			for _, g := range groups {
				fmt.Fprintf(w, "%d\t%s\t%s\n", g.ID, g.Slug, g.Title)
			}
			return w.Flush()
		},
	}

	group.AddCommand(create, list)
	return group
}

func newCacheCmd(open envOpener) *cobra.Command {
	cache := &cobra.Command{
		Use:   "cache",
		Short: "Manage the feed cache",
	}
	cache.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Drop every cached index page",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := open(false, true)
			if err != nil {
				return err
			}
			defer env.Close()
			if err := env.feeds.ClearCache(cmdContext(cmd)); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "feed cache cleared")
			return nil
		},
	})
	return cache
}

func cmdContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
