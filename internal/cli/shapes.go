package cli

import (
	"github.com/spf13/cobra"

	"github.com/mcoot/blockdrop/internal/model"
	"github.com/mcoot/blockdrop/internal/services/catalog"
)

func newShapesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shapes [kind...]",
		Short: "Show the piece catalog",
		Long:  "Show every rotation of the standard pieces, or only the named kinds.",
		RunE: func(cmd *cobra.Command, args []string) error {
			cat := catalog.Default()

			kinds := cat.Kinds()
			if len(args) > 0 {
				kinds = kinds[:0]
				for _, arg := range args {
					kind, err := model.ParseKind(arg)
					if err != nil {
						return err
					}
					kinds = append(kinds, kind)
				}
			}

			shapes := make([]ShapeView, 0, len(kinds))
			for _, kind := range kinds {
				frames, err := cat.FramesFor(kind)
				if err != nil {
					return err
				}
				shapes = append(shapes, ShapeView{Kind: kind, Frames: frames})
			}
			return out.Print(shapes)
		},
	}
}
