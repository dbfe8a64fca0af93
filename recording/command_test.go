package recording

import (
	"testing"
)

func TestCommandType_String(t *testing.T) {
	tests := []struct {
		ct   CommandType
		want string
	}{
		{CmdSetAntiAlias, "SetAntiAlias"},
		{CmdSetMaskBlurFilter, "SetMaskBlurFilter"},
		{CmdSave, "Save"},
		{CmdSaveLayer, "SaveLayer"},
		{CmdRestore, "Restore"},
		{CmdTransformFullPerspective, "TransformFullPerspective"},
		{CmdClipPath, "ClipPath"},
		{CmdDrawPaint, "DrawPaint"},
		{CmdDrawImageLattice, "DrawImageLattice"},
		{CmdDrawShadow, "DrawShadow"},
		{CommandType(254), "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.ct.String(); got != tt.want {
				t.Errorf("CommandType.String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommandTypeNamesComplete(t *testing.T) {
	seen := make(map[string]CommandType)
	for ct := CommandType(0); ct < cmdCount; ct++ {
		name := ct.String()
		if name == "" || name == "Unknown" {
			t.Errorf("CommandType(%d) has no name", ct)
			continue
		}
		if prev, dup := seen[name]; dup {
			t.Errorf("CommandType(%d) and CommandType(%d) share name %q", prev, ct, name)
		}
		seen[name] = ct
	}
}

// allCommands holds one zero-valued instance of every command.
var allCommands = []Command{
	SetAntiAliasCommand{}, SetDitherCommand{}, SetInvertColorsCommand{},
	SetStrokeCapCommand{}, SetStrokeJoinCommand{}, SetStyleCommand{},
	SetStrokeWidthCommand{}, SetStrokeMiterCommand{}, SetColorCommand{},
	SetBlendModeCommand{}, SetShaderCommand{}, SetColorFilterCommand{},
	SetImageFilterCommand{}, SetPathEffectCommand{}, SetMaskFilterCommand{},
	SetMaskBlurFilterCommand{},
	SaveCommand{}, SaveLayerCommand{}, RestoreCommand{},
	TranslateCommand{}, ScaleCommand{}, RotateCommand{}, SkewCommand{},
	Transform2DAffineCommand{}, TransformFullPerspectiveCommand{},
	ClipRectCommand{}, ClipRRectCommand{}, ClipPathCommand{},
	DrawPaintCommand{}, DrawColorCommand{}, DrawLineCommand{}, DrawRectCommand{},
	DrawOvalCommand{}, DrawCircleCommand{}, DrawRRectCommand{}, DrawDRRectCommand{},
	DrawArcCommand{}, DrawPathCommand{}, DrawPointsCommand{}, DrawVerticesCommand{},
	DrawImageCommand{}, DrawImageRectCommand{}, DrawImageNineCommand{},
	DrawImageLatticeCommand{}, DrawAtlasCommand{}, DrawPictureCommand{},
	DrawDisplayListCommand{}, DrawTextBlobCommand{}, DrawShadowCommand{},
}

func TestCommandInterface(t *testing.T) {
	if len(allCommands) != int(cmdCount) {
		t.Fatalf("got %d commands, want %d", len(allCommands), cmdCount)
	}
	// Commands are declared in CommandType order.
	for i, cmd := range allCommands {
		if got := cmd.Type(); got != CommandType(i) {
			t.Errorf("%T.Type() = %v, want %v", cmd, got, CommandType(i))
		}
	}
}

func TestRef_IsValid(t *testing.T) {
	tests := []struct {
		name string
		ref  interface{ IsValid() bool }
		want bool
	}{
		{"path zero", PathRef(0), true},
		{"path non-zero", PathRef(42), true},
		{"path invalid", PathRef(InvalidRef), false},
		{"image zero", ImageRef(0), true},
		{"image non-zero", ImageRef(42), true},
		{"image invalid", ImageRef(InvalidRef), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.ref.IsValid(); got != tt.want {
				t.Errorf("IsValid() = %v, want %v", got, tt.want)
			}
		})
	}
}
