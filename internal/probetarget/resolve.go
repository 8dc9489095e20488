package probetarget

import (
	"context"
	"os/exec"
	"time"

	"github.com/mpflash/mpflash/internal/errs"
	"github.com/mpflash/mpflash/internal/logx"
	"github.com/mpflash/mpflash/internal/retry"
	"github.com/mpflash/mpflash/internal/types"
)

// packInstallTimeout bounds how long a pack auto-install may run
// before resolution gives up.
const packInstallTimeout = 5 * time.Minute

// Resolve finds the probe target matching dev, installing the
// relevant target pack and retrying once if the first enumeration
// comes up empty or with no fuzzy match.
func Resolve(ctx context.Context, backend Backend, cache *Cache, dev types.Device, installCmd []string) (Target, error) {
	key := struct{ boardID, cpu, description, port string }{dev.BoardID, dev.CPU, dev.Description, dev.Port}
	if t, ok := cache.get(key.boardID, key.cpu, key.description, key.port); ok {
		return t, nil
	}

	parsed := Parse(dev.Description, dev.CPU, dev.Port)

	var target Target
	installed := false
	err := retry.Do(ctx, 2, time.Second, func(ctx context.Context) error {
		targets, err := backend.Targets(ctx)
		if err != nil {
			return err
		}
		t, _, ok := FuzzyMatch(parsed, dev.Port, targets)
		if ok {
			target = t
			return nil
		}
		if len(installCmd) > 0 && !installed {
			installed = true
			if err := installPack(ctx, installCmd); err != nil {
				return err
			}
			cache.Invalidate(key.boardID, key.cpu, key.description, key.port)
		}
		return errs.New(errs.KindUnsuitableTransport, "no probe target matched device description", dev.Description)
	})
	if err != nil {
		return Target{}, err
	}

	cache.put(key.boardID, key.cpu, key.description, key.port, target)
	return target, nil
}

func installPack(ctx context.Context, installCmd []string) error {
	if len(installCmd) == 0 {
		return errs.New(errs.KindExternalToolMissing, "no pack install command configured")
	}
	ctx, cancel := context.WithTimeout(ctx, packInstallTimeout)
	defer cancel()

	logx.Default().Infof("installing target pack: %v", installCmd)
	cmd := exec.CommandContext(ctx, installCmd[0], installCmd[1:]...)
	if err := cmd.Run(); err != nil {
		return errs.New(errs.KindExternalToolMissing, "target pack install failed", err.Error())
	}
	return nil
}
