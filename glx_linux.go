//go:build linux && !noglx
// +build linux,!noglx

package main

/*
#cgo LDFLAGS: -lX11 -lGL
#include <stdlib.h>
#include <X11/Xlib.h>
#include <X11/Xutil.h>
#include <GL/gl.h>
#include <GL/glx.h>

typedef GLXContext (*glversion_create_context_attribs_proc)(Display *, GLXFBConfig, GLXContext, Bool, const int *);

static int glversion_x_error;
static int (*glversion_old_handler)(Display *, XErrorEvent *);

static int glversion_error_handler(Display *dpy, XErrorEvent *ev) {
	(void)dpy;
	glversion_x_error = ev->error_code;
	return 0;
}

// Failures of the requests below arrive as asynchronous X errors, which the
// default handler turns into exit(1). Trap them around a single call and
// hand the code back instead.
static void glversion_trap_errors(void) {
	glversion_x_error = 0;
	glversion_old_handler = XSetErrorHandler(glversion_error_handler);
}

static int glversion_untrap_errors(Display *dpy) {
	XSync(dpy, False);
	XSetErrorHandler(glversion_old_handler);
	return glversion_x_error;
}

static GLXContext glversion_create_context(Display *dpy, GLXFBConfig cfg, Bool direct, const int *attribs, int *xerr) {
	glversion_create_context_attribs_proc create = (glversion_create_context_attribs_proc)
		glXGetProcAddress((const GLubyte *)"glXCreateContextAttribsARB");
	*xerr = 0;
	if (!create) {
		return NULL;
	}
	glversion_trap_errors();
	GLXContext ctx = create(dpy, cfg, NULL, direct, attribs);
	*xerr = glversion_untrap_errors(dpy);
	return ctx;
}

static Bool glversion_make_current(Display *dpy, GLXDrawable win, GLXContext ctx, int *xerr) {
	glversion_trap_errors();
	Bool ok = glXMakeCurrent(dpy, win, ctx);
	*xerr = glversion_untrap_errors(dpy);
	if (*xerr && ok) {
		glversion_trap_errors();
		glXMakeCurrent(dpy, None, NULL);
		glversion_untrap_errors(dpy);
	}
	return ok && !*xerr;
}

static GLXFBConfig *glversion_choose_fbconfig(Display *dpy, int screen, Bool doubleBuffer, int *n) {
	int attribs[] = {
		GLX_RENDER_TYPE, GLX_RGBA_BIT,
		GLX_RED_SIZE, 1,
		GLX_GREEN_SIZE, 1,
		GLX_BLUE_SIZE, 1,
		GLX_DOUBLEBUFFER, doubleBuffer,
		None
	};
	return glXChooseFBConfig(dpy, screen, attribs, n);
}

static GLXFBConfig glversion_fbconfig_at(GLXFBConfig *configs, int i) {
	return configs[i];
}

static Window glversion_create_window(Display *dpy, int screen, XVisualInfo *vis, unsigned int width, unsigned int height, Colormap *cmap, int *xerr) {
	Window root = RootWindow(dpy, screen);
	XSetWindowAttributes attr;
	glversion_trap_errors();
	attr.background_pixel = 0;
	attr.border_pixel = 0;
	attr.colormap = XCreateColormap(dpy, root, vis->visual, AllocNone);
	attr.event_mask = StructureNotifyMask | ExposureMask;
	unsigned long mask = CWBackPixel | CWBorderPixel | CWColormap | CWEventMask;
	Window win = XCreateWindow(dpy, root, 0, 0, width, height, 0, vis->depth, InputOutput, vis->visual, mask, &attr);
	*xerr = glversion_untrap_errors(dpy);
	if (*xerr) {
		// either resource may not exist; ignore errors from freeing them
		glversion_trap_errors();
		if (win) {
			XDestroyWindow(dpy, win);
		}
		XFreeColormap(dpy, attr.colormap);
		glversion_untrap_errors(dpy);
		*cmap = 0;
		return 0;
	}
	*cmap = attr.colormap;
	return win;
}
*/
import "C"
import (
	"errors"
	"log"
	"unsafe"
)

// xlibGLX drives libX11/libGL directly. C pointers never leave this file:
// callers get small integer handles.
type xlibGLX struct {
	dpy  *C.Display
	next uint32

	lists     map[fbConfigList]*C.GLXFBConfig
	configs   map[fbConfig]C.GLXFBConfig
	visuals   map[visualInfo]*C.XVisualInfo
	contexts  map[glxContext]C.GLXContext
	colormaps map[xWindow]C.Colormap
}

func newGLXService() glxService {
	return &xlibGLX{
		lists:     make(map[fbConfigList]*C.GLXFBConfig),
		configs:   make(map[fbConfig]C.GLXFBConfig),
		visuals:   make(map[visualInfo]*C.XVisualInfo),
		contexts:  make(map[glxContext]C.GLXContext),
		colormaps: make(map[xWindow]C.Colormap),
	}
}

func (x *xlibGLX) handle() uint32 {
	x.next++
	return x.next
}

func cBool(b bool) C.Bool {
	if b {
		return C.True
	}
	return C.False
}

func optCString(s string) *C.char {
	if s == "" {
		return nil
	}
	return C.CString(s)
}

func (x *xlibGLX) OpenDisplay(name string) error {
	cname := optCString(name)
	defer C.free(unsafe.Pointer(cname))
	x.dpy = C.XOpenDisplay(cname)
	if x.dpy == nil {
		return errors.New("x11: cannot connect to the X server")
	}
	return nil
}

func (x *xlibGLX) DisplayName(name string) string {
	cname := optCString(name)
	defer C.free(unsafe.Pointer(cname))
	return C.GoString(C.XDisplayName(cname))
}

func (x *xlibGLX) CloseDisplay() {
	if x.dpy == nil {
		return
	}
	C.XCloseDisplay(x.dpy)
	x.dpy = nil
}

func (x *xlibGLX) ChooseFBConfigs(screen int, doubleBuffer bool) (fbConfigList, []fbConfig) {
	var n C.int
	arr := C.glversion_choose_fbconfig(x.dpy, C.int(screen), cBool(doubleBuffer), &n)
	if arr == nil {
		return 0, nil
	}
	if n <= 0 {
		C.XFree(unsafe.Pointer(arr))
		return 0, nil
	}
	list := fbConfigList(x.handle())
	x.lists[list] = arr
	configs := make([]fbConfig, int(n))
	for i := range configs {
		cfg := fbConfig(x.handle())
		x.configs[cfg] = C.glversion_fbconfig_at(arr, C.int(i))
		configs[i] = cfg
	}
	return list, configs
}

func (x *xlibGLX) FreeFBConfigs(list fbConfigList) {
	arr, ok := x.lists[list]
	if !ok {
		return
	}
	delete(x.lists, list)
	// The configs themselves belong to the display and stay valid.
	C.XFree(unsafe.Pointer(arr))
}

func (x *xlibGLX) VisualFromFBConfig(cfg fbConfig) visualInfo {
	c, ok := x.configs[cfg]
	if !ok {
		return 0
	}
	vi := C.glXGetVisualFromFBConfig(x.dpy, c)
	if vi == nil {
		return 0
	}
	vis := visualInfo(x.handle())
	x.visuals[vis] = vi
	return vis
}

func (x *xlibGLX) FreeVisual(vis visualInfo) {
	vi, ok := x.visuals[vis]
	if !ok {
		return
	}
	delete(x.visuals, vis)
	C.XFree(unsafe.Pointer(vi))
}

func (x *xlibGLX) QueryExtensionsString(screen int) string {
	return C.GoString(C.glXQueryExtensionsString(x.dpy, C.int(screen)))
}

func (x *xlibGLX) addContext(ctx C.GLXContext) glxContext {
	h := glxContext(x.handle())
	x.contexts[h] = ctx
	return h
}

func (x *xlibGLX) CreateContextAttribs(cfg fbConfig, attribs []int32, direct bool) (glxContext, xError) {
	c, ok := x.configs[cfg]
	if !ok || len(attribs) == 0 {
		return 0, 0
	}
	var xerr C.int
	ctx := C.glversion_create_context(x.dpy, c, cBool(direct), (*C.int)(unsafe.Pointer(&attribs[0])), &xerr)
	if ctx == nil {
		return 0, xError(xerr)
	}
	return x.addContext(ctx), xError(xerr)
}

func (x *xlibGLX) CreateNewContext(cfg fbConfig, direct bool) glxContext {
	c, ok := x.configs[cfg]
	if !ok {
		return 0
	}
	ctx := C.glXCreateNewContext(x.dpy, c, C.GLX_RGBA_TYPE, nil, cBool(direct))
	if ctx == nil {
		return 0
	}
	return x.addContext(ctx)
}

func (x *xlibGLX) IsDirect(ctx glxContext) bool {
	c, ok := x.contexts[ctx]
	if !ok {
		return false
	}
	return C.glXIsDirect(x.dpy, c) != C.False
}

func (x *xlibGLX) DestroyContext(ctx glxContext) {
	c, ok := x.contexts[ctx]
	if !ok {
		return
	}
	delete(x.contexts, ctx)
	C.glXDestroyContext(x.dpy, c)
}

func (x *xlibGLX) CreateWindow(screen int, vis visualInfo, width, height int) xWindow {
	vi, ok := x.visuals[vis]
	if !ok {
		return 0
	}
	var (
		cmap C.Colormap
		xerr C.int
	)
	w := C.glversion_create_window(x.dpy, C.int(screen), vi, C.uint(width), C.uint(height), &cmap, &xerr)
	if w == 0 {
		log.Printf("XCreateWindow failed: %s\n", xError(xerr))
		return 0
	}
	win := xWindow(w)
	x.colormaps[win] = cmap
	return win
}

func (x *xlibGLX) DestroyWindow(win xWindow) {
	C.XDestroyWindow(x.dpy, C.Window(win))
	if cmap, ok := x.colormaps[win]; ok {
		delete(x.colormaps, win)
		C.XFreeColormap(x.dpy, cmap)
	}
}

func (x *xlibGLX) MakeCurrent(win xWindow, ctx glxContext) bool {
	c, ok := x.contexts[ctx]
	if !ok {
		return false
	}
	var xerr C.int
	if C.glversion_make_current(x.dpy, C.GLXDrawable(win), c, &xerr) == C.False {
		if xerr != 0 {
			log.Printf("glXMakeCurrent raised %s\n", xError(xerr))
		}
		return false
	}
	return true
}

func (x *xlibGLX) ReleaseCurrent() {
	C.glXMakeCurrent(x.dpy, 0, nil)
}

func (x *xlibGLX) GetString(name uint32) string {
	s := C.glGetString(C.GLenum(name))
	if s == nil {
		return ""
	}
	return C.GoString((*C.char)(unsafe.Pointer(s)))
}

func (x *xlibGLX) GetError() uint32 {
	return uint32(C.glGetError())
}

func (x *xlibGLX) Sync(discard bool) {
	C.XSync(x.dpy, cBool(discard))
}
