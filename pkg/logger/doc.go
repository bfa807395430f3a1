// Package logger provides a small factory over log/slog plus typed attribute
// helpers so log keys stay consistent across the codebase.
//
//	log := logger.New(logger.WithEnvironment(cfg.Env, "identityd"))
//	log.Info("principal registered",
//	    logger.PrincipalID(p.ID),
//	    logger.Component("identity"),
//	)
package logger
