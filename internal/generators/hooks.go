package generators

import (
	"fmt"
	"strings"

	"github.com/gosimple/slug"
	"github.com/iancoleman/strcase"

	oerrors "github.com/wpmake/cli/internal/errors"
	"github.com/wpmake/cli/internal/generator"
	"github.com/wpmake/cli/internal/tree"
)

// Defaults applied when neither an answer nor the profile sets them.
const (
	DefaultLicense       = "GPLv2+"
	DefaultRootNamespace = "TenUp"
)

// Node packages added by the style and Grunt hooks.
var nodePackages = map[string]string{
	"grunt-sass":             "^3.1.0",
	"sass":                   "^1.69.0",
	"grunt-postcss":          "^0.9.0",
	"autoprefixer":           "^10.4.0",
	"grunt-contrib-concat":   "^2.1.0",
	"grunt-contrib-uglify":   "^5.2.0",
	"grunt-contrib-cssmin":   "^5.0.0",
	"grunt-contrib-watch":    "^1.1.0",
	"grunt-contrib-copy":     "^1.0.0",
	"grunt-contrib-compress": "^2.0.0",
	"grunt-phpunit":          "^0.3.6",
}

// taskPackages maps a Grunt task to the npm package that provides it.
var taskPackages = map[string]string{
	"concat":   "grunt-contrib-concat",
	"uglify":   "grunt-contrib-uglify",
	"cssmin":   "grunt-contrib-cssmin",
	"watch":    "grunt-contrib-watch",
	"copy":     "grunt-contrib-copy",
	"compress": "grunt-contrib-compress",
	"phpunit":  "grunt-phpunit",
	"sass":     "grunt-sass",
	"postcss":  "grunt-postcss",
}

// extraHooks are generator specific hooks run after the common ones.
var extraHooks = map[string][]generator.Hook{
	"child-theme": {requireParent},
	"library":     {libraryComposer},
}

func commonHooks(b *Blueprint) []generator.Hook {
	return []generator.Hook{deriveNames, styles, gruntTasks(b.GruntTasks), phpunit}
}

// deriveNames fills the names templates rely on from the answers.
func deriveNames(g *generator.Generator) error {
	d := g.Data()

	title := d.String("projectTitle")
	if title == "" {
		title = d.String("basename")
	}
	if d.String("fileSlug") == "" {
		d["fileSlug"] = slug.Make(title)
	}
	fileSlug := d.String("fileSlug")
	if err := ValidateSlug(fileSlug); err != nil {
		return fmt.Errorf("%w: %w", oerrors.ErrValidation, err)
	}

	if d.String("funcPrefix") == "" {
		d["funcPrefix"] = strcase.ToSnake(fileSlug)
	}
	if err := ValidateFuncPrefix(d.String("funcPrefix")); err != nil {
		return fmt.Errorf("%w: %w", oerrors.ErrValidation, err)
	}

	root := d.String("rootNamespace")
	if root == "" || root == "prompt" {
		root = DefaultRootNamespace
		d["rootNamespace"] = root
	}
	if err := ValidateNamespace(root); err != nil {
		return fmt.Errorf("%w: %w", oerrors.ErrValidation, err)
	}

	d["namespace"] = strcase.ToCamel(fileSlug)
	d["classSlug"] = classSlug(fileSlug)
	d["vendor"] = slug.Make(root)
	if d.String("license") == "" {
		d["license"] = DefaultLicense
	}
	d["composerType"] = composerType(d.String("generator"))
	return nil
}

// classSlug turns my-great-theme into My_Great_Theme.
func classSlug(fileSlug string) string {
	parts := strings.Split(strcase.ToSnake(fileSlug), "_")
	for i, p := range parts {
		if p != "" {
			parts[i] = strings.ToUpper(p[:1]) + p[1:]
		}
	}
	return strings.Join(parts, "_")
}

func composerType(generatorName string) string {
	switch generatorName {
	case "plugin":
		return "wordpress-plugin"
	case "theme", "child-theme":
		return "wordpress-theme"
	default:
		return "library"
	}
}

// styles places the main stylesheet according to the Sass and Autoprefixer
// answers. Generators that never ask about Sass get no stylesheet.
func styles(g *generator.Generator) error {
	d := g.Data()
	if _, asked := d["sass"]; !asked {
		return nil
	}

	var dir, ext string
	switch {
	case d.Bool("sass"):
		// Sass output is always autoprefixed.
		d["autoprefixer"] = true
		dir, ext = "assets/css/sass", "scss"
		d["cssSource"] = "assets/css/" + d.String("fileSlug") + ".css"
	case d.Bool("autoprefixer"):
		dir, ext = "assets/css/src", "css"
		d["cssSource"] = "assets/css/src/" + d.String("fileSlug") + ".css"
	default:
		dir, ext = "assets/css", "css"
	}
	g.Subtree(tree.KindTemplates, dir)["{{ .fileSlug }}."+ext] = "css/style.css"

	if d.Bool("sass") {
		for _, pkg := range []string{"grunt-sass", "sass"} {
			if err := g.NodeDependency(pkg, nodePackages[pkg], true); err != nil {
				return err
			}
		}
	}
	if d.Bool("autoprefixer") {
		for _, pkg := range []string{"grunt-postcss", "autoprefixer"} {
			if err := g.NodeDependency(pkg, nodePackages[pkg], true); err != nil {
				return err
			}
		}
	}
	return nil
}

// gruntTasks writes a config module under tasks/ for every listed task,
// plus sass and postcss when they are in use.
func gruntTasks(listed []string) generator.Hook {
	return func(g *generator.Generator) error {
		if g.Gruntfile() == nil {
			return nil
		}
		d := g.Data()

		tasks := append([]string(nil), listed...)
		if d.Bool("sass") {
			tasks = append(tasks, "sass")
		}
		if d.Bool("autoprefixer") {
			tasks = append(tasks, "postcss")
		}

		for _, task := range tasks {
			src, err := g.Starter(task, "js")
			if err != nil {
				return err
			}
			if err := g.GruntTask(task, src); err != nil {
				return err
			}
			if pkg, ok := taskPackages[task]; ok {
				if err := g.NodeDependency(pkg, nodePackages[pkg], true); err != nil {
					return err
				}
			}
		}

		alias, err := g.Starter("alias", "js")
		if err != nil {
			return err
		}
		return g.GruntTask("aliases", alias)
	}
}

// phpunit adds PHPUnit when the tree holds PHPUnit tests.
func phpunit(g *generator.Generator) error {
	n := g.Lifecycle().Tree
	for _, dir := range []string{"tests", "phpunit"} {
		if n == nil {
			return nil
		}
		n = n.Children[dir]
	}
	if n == nil || len(n.Branch(tree.KindTemplates))+len(n.Branch(tree.KindCopies)) == 0 {
		return nil
	}
	return g.ComposerDependency("phpunit/phpunit", "^9.6", true)
}

func requireParent(g *generator.Generator) error {
	parent := g.Data().String("parentSlug")
	if parent == "" {
		return oerrors.NewValidationError("a child theme needs a parent theme", "parentSlug", "parentSlug",
			"Answer the 'Parent Theme Slug' question, for example twentytwentyfour.")
	}
	if err := ValidateSlug(parent); err != nil {
		return fmt.Errorf("%w: %w", oerrors.ErrValidation, err)
	}
	return nil
}

// libraryComposer lets the library be installed as a Composer package.
func libraryComposer(g *generator.Generator) error {
	return g.ComposerDependency("composer/installers", "^2.2", false)
}
