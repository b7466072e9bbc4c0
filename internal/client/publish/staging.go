package publish

import (
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/worldpub/internal/client/models"
	"github.com/dmitrijs2005/worldpub/internal/filex"
)

type stagedArtifacts struct {
	asset string
	pkg   string
}

// StagingName returns the deterministic, collision-free file name a build
// artifact is staged under. Because the name is a pure function of the key
// tuple, a leftover from a prior aborted run lands on the same path and is
// overwritten rather than accumulated.
func StagingName(id string, version int, hostVersion, assetVersion, platform, env, ext string) string {
	return fmt.Sprintf("%s-%d-%s-%s-%s-%s%s", id, version, hostVersion, assetVersion, platform, env, ext)
}

func (p *Pipeline) stagingDir() (string, error) {
	if p.cfg.StagingDir != "" {
		return filex.EnsureSubDir(p.cfg.StagingDir, "")
	}
	return filex.EnsureSubDir("", "staging")
}

// prepareArtifacts copies the build outputs into the staging directory under
// versioned names. The asset bundle copy is mandatory; the package is staged
// only when a file is actually present at its path.
func (p *Pipeline) prepareArtifacts(session *models.UploadSession, rec *models.Blueprint) (*stagedArtifacts, error) {
	dir, err := p.stagingDir()
	if err != nil {
		return nil, err
	}

	name := func(ext string) string {
		return StagingName(rec.ID, rec.Version, p.cfg.HostVersion, p.cfg.AssetFormatVersion, session.Platform, p.cfg.ServerEnv, ext)
	}

	staged := &stagedArtifacts{
		asset: filepath.Join(dir, name(filepath.Ext(session.AssetPath))),
	}
	if err := filex.CopyFile(session.AssetPath, staged.asset); err != nil {
		return nil, fmt.Errorf("stage asset bundle: %w", err)
	}

	if filex.Exists(session.PackagePath) {
		staged.pkg = filepath.Join(dir, name(filepath.Ext(session.PackagePath)))
		if err := filex.CopyFile(session.PackagePath, staged.pkg); err != nil {
			return nil, fmt.Errorf("stage package: %w", err)
		}
	}

	return staged, nil
}
